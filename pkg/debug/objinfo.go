// Package debug 提供简单的诊断打印：对象信息与函数耗时
package debug

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnWidth = 30

// ObjInfo 打印对象的值、类型、浅层大小，以及字段和方法名（三列排列）
func ObjInfo(w io.Writer, v any) {
	t := reflect.TypeOf(v)
	var size uintptr
	if t != nil {
		size = t.Size()
	}
	fmt.Fprintf(w, "Object: %v\nType: %v\nSize: %d bytes\n", v, t, size)

	names := Members(v)
	// 按 [0::3] [1::3] [2::3] 分成三列
	var cols [3][]string
	for i, n := range names {
		cols[i%3] = append(cols[i%3], n)
	}
	rows := len(cols[0])

	fmt.Fprintln(w, "Functions:")
	for r := 0; r < rows; r++ {
		var b strings.Builder
		for c := 0; c < 3; c++ {
			cell := ""
			if r < len(cols[c]) {
				cell = cols[c][r]
			}
			if c < 2 {
				cell = runewidth.FillRight(cell, columnWidth)
			}
			b.WriteString(cell)
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

// Members 返回对象可见的字段名与方法名，按字母排序
func Members(v any) []string {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil
	}

	seen := make(map[string]bool)
	for i := 0; i < t.NumMethod(); i++ {
		seen[t.Method(i).Name] = true
	}

	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() == reflect.Struct {
		for i := 0; i < st.NumField(); i++ {
			seen[st.Field(i).Name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
