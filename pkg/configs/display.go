package configs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/yeisme/tooled/pkg/style"
)

// OutputFormat 命令输出格式
type OutputFormat string

const (
	FormatYAML OutputFormat = "yaml"
	FormatJSON OutputFormat = "json"
	FormatTOML OutputFormat = "toml"
	FormatText OutputFormat = "text"
)

var formatAliases = map[string]OutputFormat{
	"yaml": FormatYAML,
	"yml":  FormatYAML,
	"json": FormatJSON,
	"toml": FormatTOML,
	"text": FormatText,
	"txt":  FormatText,
}

// ValidFormats 所有输出格式
func ValidFormats() []string {
	return []string{string(FormatYAML), string(FormatJSON), string(FormatTOML), string(FormatText)}
}

// ParseOutputFormat 解析格式名，大小写不敏感，接受 yml / txt 别名
func ParseOutputFormat(format string) (OutputFormat, error) {
	if f, ok := formatAliases[strings.ToLower(format)]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q, supported formats: %s", format, strings.Join(ValidFormats(), ", "))
}

// GetOutputFormatFromFlags 读取 --format 或 --yaml/--json/--toml/--text，默认 yaml
func GetOutputFormatFromFlags(flags *pflag.FlagSet) OutputFormat {
	if s, _ := flags.GetString("format"); s != "" {
		if f, err := ParseOutputFormat(s); err == nil {
			return f
		}
	}
	for _, f := range []OutputFormat{FormatYAML, FormatJSON, FormatTOML, FormatText} {
		if on, _ := flags.GetBool(string(f)); on {
			return f
		}
	}
	return FormatYAML
}

// EncodeData 按格式序列化，不带高亮
func EncodeData(data any, format OutputFormat) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(data); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
	case FormatText:
		fmt.Fprintf(&buf, "%+v\n", data)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	return buf.Bytes(), nil
}

// OutputData 序列化后写入 out，out 为终端时带语法高亮
func OutputData(data any, format OutputFormat, out io.Writer) error {
	raw, err := EncodeData(data, format)
	if err != nil {
		return err
	}
	if style.IsTerminal(out) {
		switch format {
		case FormatYAML:
			return style.PrintYAML(out, raw)
		case FormatJSON:
			return style.PrintJSON(out, raw)
		case FormatTOML:
			return style.PrintTOML(out, raw)
		}
	}
	_, err = out.Write(raw)
	return err
}

// GetConfigSection 返回配置段，section 为空时返回全部
// showAll 为 true 时返回解码后的结构体（含默认值），否则返回 viper 的原始键值
func GetConfigSection(v *viper.Viper, section string, showAll bool) (any, error) {
	section = strings.ToLower(section)
	if !showAll {
		switch {
		case section == "":
			return v.AllSettings(), nil
		case v.IsSet(section):
			return v.Get(section), nil
		default:
			return nil, fmt.Errorf("unknown or unset configuration section %q", section)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if section == "" {
		return cfg, nil
	}
	val := reflect.ValueOf(cfg)
	for i := range val.NumField() {
		if val.Type().Field(i).Tag.Get("mapstructure") == section {
			return val.Field(i).Interface(), nil
		}
	}
	return nil, fmt.Errorf("unknown configuration section %q", section)
}
