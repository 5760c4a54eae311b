// Package style 负责终端输出的样式：表格、列表、标题、键值对、JSON/YAML/TOML 高亮和 Markdown
package style

import "github.com/charmbracelet/lipgloss"

// 终端调色板
const (
	ColorAccentPrimary = lipgloss.Color("#33A1FF") // 标题、列表符号
	ColorText          = lipgloss.Color("#E4E4E4")
	ColorMuted         = lipgloss.Color("#6B7280") // 标点、注释、表格边框

	ColorKey    = lipgloss.Color("#55BCF4")
	ColorString = lipgloss.Color("#FFFFFF")
	ColorNumber = lipgloss.Color("#D4EC19")
	ColorBool   = lipgloss.Color("#DFAB49")
	ColorNull   = lipgloss.Color("#6272A4")
)
