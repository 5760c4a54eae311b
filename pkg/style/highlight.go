package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// syntax 描述一种键值格式的分隔符与注释符
type syntax struct {
	sep     byte // 键与值的分隔符
	comment byte // 0 表示不支持注释
}

var (
	syntaxJSON = syntax{sep: ':'}
	syntaxYAML = syntax{sep: ':', comment: '#'}
	syntaxTOML = syntax{sep: '=', comment: '#'}
)

type palette struct {
	key, str, num, boolean, null, punct lipgloss.Style
}

func newPalette() palette {
	return palette{
		key:     lipgloss.NewStyle().Foreground(ColorKey).Bold(true),
		str:     lipgloss.NewStyle().Foreground(ColorString),
		num:     lipgloss.NewStyle().Foreground(ColorNumber),
		boolean: lipgloss.NewStyle().Foreground(ColorBool),
		null:    lipgloss.NewStyle().Foreground(ColorNull),
		punct:   lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// PrintJSON 缩进并高亮输出 JSON；string / []byte 视为原始 JSON 文本
func PrintJSON(w io.Writer, v any) error {
	var raw []byte
	switch x := v.(type) {
	case string:
		raw = []byte(x)
	case []byte:
		raw = x
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		raw = b
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := fmt.Fprint(w, highlight(buf.String(), syntaxJSON))
	return err
}

// PrintYAML 高亮输出 YAML；string / []byte 视为已序列化的 YAML 文本
func PrintYAML(w io.Writer, v any) error {
	text, err := serialized(v, yaml.Marshal)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, highlight(text, syntaxYAML))
	return err
}

// PrintTOML 高亮输出 TOML；string / []byte 视为已序列化的 TOML 文本
func PrintTOML(w io.Writer, v any) error {
	text, err := serialized(v, toml.Marshal)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, highlight(text, syntaxTOML))
	return err
}

func serialized(v any, marshal func(any) ([]byte, error)) (string, error) {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	default:
		b, err := marshal(v)
		if err != nil {
			return "", err
		}
		s = string(b)
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s, nil
}

// highlight 逐行高亮：分隔符左侧为键，右侧按字符串/数字/布尔/null/标点着色
func highlight(text string, syn syntax) string {
	p := newPalette()
	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder
	for _, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		b.WriteString(highlightLine(body, syn, p))
		if len(body) != len(line) {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func highlightLine(line string, syn syntax, p palette) string {
	trimmed := strings.TrimSpace(line)
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	switch {
	case trimmed == "":
		return line
	case syn.comment != 0 && trimmed[0] == syn.comment:
		return indent + p.punct.Render(trimmed)
	case syn == syntaxTOML && trimmed[0] == '[':
		// 表头 [section]
		return indent + p.key.Render(trimmed)
	}

	rest := line[len(indent):]
	var b strings.Builder
	b.WriteString(indent)
	if strings.HasPrefix(rest, "- ") {
		b.WriteString(p.punct.Render("-"))
		b.WriteByte(' ')
		rest = rest[2:]
	}
	if i := indexUnquoted(rest, syn.sep); i > 0 {
		b.WriteString(p.key.Render(rest[:i]))
		b.WriteString(p.punct.Render(string(syn.sep)))
		rest = rest[i+1:]
	}
	tokenize(rest, &b, p)
	return b.String()
}

// indexUnquoted 返回不在引号内的第一个 target 的位置，YAML 要求 ':' 后跟空白或行尾
func indexUnquoted(s string, target byte) int {
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == '\\' && quote == '"' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == target:
			if target == ':' && i+1 < len(s) && s[i+1] != ' ' {
				continue
			}
			return i
		}
	}
	return -1
}

func tokenize(s string, b *strings.Builder, p palette) {
	i := 0
	for i < len(s) {
		ch := s[i]
		switch {
		case ch == '"' || ch == '\'':
			j := i + 1
			for j < len(s) && s[j] != ch {
				if s[j] == '\\' && ch == '"' {
					j++
				}
				j++
			}
			j = min(j+1, len(s))
			b.WriteString(p.str.Render(s[i:j]))
			i = j
		case strings.IndexByte("{}[],", ch) >= 0:
			b.WriteString(p.punct.Render(string(ch)))
			i++
		case ch == ' ' || ch == '\t':
			b.WriteByte(ch)
			i++
		default:
			j := i
			for j < len(s) && strings.IndexByte("{}[], \t", s[j]) < 0 {
				j++
			}
			b.WriteString(scalar(s[i:j], p))
			i = j
		}
	}
}

func scalar(tok string, p palette) string {
	switch tok {
	case "true", "false":
		return p.boolean.Render(tok)
	case "null", "~":
		return p.null.Render(tok)
	}
	if isNumber(tok) {
		return p.num.Render(tok)
	}
	return p.str.Render(tok)
}

func isNumber(tok string) bool {
	digits := 0
	for i, r := range tok {
		switch {
		case unicode.IsDigit(r):
			digits++
		case (r == '-' || r == '+') && (i == 0 || tok[i-1] == 'e' || tok[i-1] == 'E'):
		case r == '.' || r == 'e' || r == 'E' || r == '_':
		default:
			return false
		}
	}
	return digits > 0
}
