package kernel

import (
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
)

// Select 在终端中交互式选择一个卷积核，右侧预览矩阵
// 用户取消时返回 fuzzyfinder.ErrAbort
func Select() (string, error) {
	names := Names()
	idx, err := fuzzyfinder.Find(names,
		func(i int) string { return names[i] },
		fuzzyfinder.WithPromptString("kernel> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 {
				return ""
			}
			return kernels[names[i]].String()
		}),
	)
	if err != nil {
		return "", err
	}
	return names[idx], nil
}

// String 以对齐的矩阵形式返回卷积核
func (k Kernel) String() string {
	width := 1
	for _, row := range k.Rows() {
		for _, cell := range row {
			width = max(width, len(cell))
		}
	}
	var b strings.Builder
	for _, row := range k.Rows() {
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%*s", width, cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
