package style

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"
)

// PrintList 以圆点列表输出 items
func PrintList(w io.Writer, items ...string) error {
	values := make([]any, len(items))
	for i, it := range items {
		values[i] = it
	}
	l := list.New(values...).
		Enumerator(list.Bullet).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(ColorAccentPrimary).MarginRight(1)).
		ItemStyle(lipgloss.NewStyle().Foreground(ColorText))

	_, err := fmt.Fprintln(w, l)
	return err
}
