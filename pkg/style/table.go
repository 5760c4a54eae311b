package style

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	xterm "github.com/charmbracelet/x/term"
)

const fallbackWidth = 80

// PrintTable 以带边框的表格输出 rows，表头转为大写
// width<=0 时使用终端宽度
func PrintTable(w io.Writer, headers []string, rows [][]string, width int) error {
	if width <= 0 {
		width = TerminalWidth(w)
	}
	upper := make([]string, len(headers))
	for i, h := range headers {
		upper[i] = strings.ToUpper(h)
	}

	re := lipgloss.NewRenderer(w)
	cell := re.NewStyle().Padding(0, 1).Foreground(ColorText)
	head := cell.Foreground(ColorAccentPrimary).Bold(true)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(re.NewStyle().Foreground(ColorMuted)).
		Headers(upper...).
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return head
			}
			return cell
		})

	_, err := fmt.Fprintln(w, tbl)
	return err
}

// TerminalWidth 返回 w 所在终端的列数，其次读取 COLUMNS，都失败时为 80
func TerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if cols, _, err := xterm.GetSize(f.Fd()); err == nil && cols > 0 {
			return cols
		}
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return fallbackWidth
}

// IsTerminal 报告 w 是否连接到终端
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && xterm.IsTerminal(f.Fd())
}
