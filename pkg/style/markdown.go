package style

import (
	"io"

	"github.com/charmbracelet/glamour"
)

const (
	minMarkdownWidth = 80
	maxMarkdownWidth = 120
)

// RenderMarkdown 用 glamour 渲染 Markdown 写入 w
// width<=0 时取终端宽度，结果限制在 [80, 120] 且不超过终端；theme 为空时使用 dracula
func RenderMarkdown(w io.Writer, input string, width int, theme string) error {
	if theme == "" {
		theme = "dracula"
	}
	term := TerminalWidth(w)
	if width <= 0 {
		width = term
	}
	width = max(minMarkdownWidth, min(width, maxMarkdownWidth, max(term, minMarkdownWidth)))

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(input)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
