package indicator

import (
	"fmt"
	"iter"
	"strings"
)

// Style 选择动画使用的字形序列
type Style string

const (
	// StyleRotate 逆时针旋转的方块
	StyleRotate Style = "rotate"
	// StyleBuild 自下而上搭建的方块
	StyleBuild Style = "build"
	// StyleDestroy 自上而下拆除的方块
	StyleDestroy Style = "destroy"
	// StyleShuffle 列交替移动的方块
	StyleShuffle Style = "shuffle"
)

// 各样式的字形表，进程级只读
var frameTables = map[Style][]string{
	StyleRotate:  {"⠚", "⠓", "⠋", "⠙"},
	StyleBuild:   {"⡀", "⠄", "⠂", "⠁", "⢁", "⠡", "⠑", "⠉", "⡉", "⠍", "⠋", "⢋", "⠫", "⠛"},
	StyleDestroy: {"⠛", "⠫", "⢋", "⠋", "⠍", "⡉", "⠉", "⠑", "⠡", "⢁", "⠁", "⠂", "⠄", "⡀"},
	StyleShuffle: {"⡇", "⢸", "⠇", "⠸", "⡆", "⢰", "⠃", "⠘"},
}

// Styles 返回所有可用的样式名称
func Styles() []string {
	return []string{string(StyleRotate), string(StyleBuild), string(StyleDestroy), string(StyleShuffle)}
}

// ParseStyle 解析样式字符串，空字符串返回默认样式 rotate
func ParseStyle(s string) (Style, error) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return StyleRotate, nil
	}
	if _, ok := frameTables[st]; !ok {
		return "", fmt.Errorf("%w: unknown style %q, supported styles: %s",
			ErrInvalidConfiguration, s, strings.Join(Styles(), ", "))
	}
	return st, nil
}

// Glyphs 返回该样式字形表的副本
func (s Style) Glyphs() []string {
	t := frameTables[s]
	out := make([]string, len(t))
	copy(out, t)
	return out
}

// Frames 返回一个无限循环的字形序列，每次 range 都从第一个字形重新开始
func (s Style) Frames() iter.Seq[string] {
	table := frameTables[s]
	return func(yield func(string) bool) {
		if len(table) == 0 {
			return
		}
		for i := 0; ; i = (i + 1) % len(table) {
			if !yield(table[i]) {
				return
			}
		}
	}
}
