// Package configs 提供应用程序配置管理功能
package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Version   string          `mapstructure:"version"`
	Log       LogConfig       `mapstructure:"log"`
	App       AppConfig       `mapstructure:"app"`
	Indicator IndicatorConfig `mapstructure:"indicator"`
	Decon     DeconConfig     `mapstructure:"decon"`
	Table     TableConfig     `mapstructure:"table"`
	Plot      PlotConfig      `mapstructure:"plot"`
}

// EnvPrefix 环境变量前缀，例如 TOOLED_LOG_LEVEL
const EnvPrefix = "TOOLED"

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "1.0")
	setLogConfigDefaults(v)
	setAppConfigDefaults(v)
	setIndicatorConfigDefaults(v)
	setDeconConfigDefaults(v)
	setTableConfigDefaults(v)
	setPlotConfigDefaults(v)
}

var globalConfig *Config

// configSearchPaths 配置文件搜索路径
func configSearchPaths() []string {
	searchPaths := []string{
		".",
		"./configs",
		"$HOME",
		"$HOME/.config",
		"$HOME/.config/tooled",
	}

	// Windows 特殊路径
	if runtime.GOOS == "windows" {
		searchPaths = append(searchPaths,
			"$USERPROFILE",
			"$APPDATA/tooled",
		)
	} else {
		searchPaths = append(searchPaths, "/etc/tooled")
	}
	return searchPaths
}

// findConfigFile 按搜索路径、文件名、扩展名的顺序查找第一个存在的配置文件
func findConfigFile() (string, bool) {
	configNames := []string{".tooled", "tooled"}
	extensions := []string{"yaml", "yml", "json", "toml"}

	for _, path := range configSearchPaths() {
		for _, name := range configNames {
			for _, ext := range extensions {
				configFile := filepath.Join(path, name+"."+ext)

				// 展开环境变量
				if strings.Contains(configFile, "$") {
					configFile = os.ExpandEnv(configFile)
				}

				if _, err := os.Stat(configFile); err == nil {
					return configFile, true
				}
			}
		}
	}

	return "", false
}

// newViper 创建带默认值和环境变量绑定的 viper 实例
func newViper(v *viper.Viper) *viper.Viper {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load 使用独立的 viper 实例加载配置，configPath 为空时按搜索路径查找
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if file, ok := findConfigFile(); ok {
		v.SetConfigFile(file)
	}
	newViper(v)

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 确保日志目录存在
	if config.Log.Mode == "file" || config.Log.Mode == "both" {
		logDir := filepath.Dir(config.Log.FilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("创建日志目录失败: %w", err)
		}
	}
	return &config, nil
}

// LoadConfig 使用全局 viper 加载配置并保存为全局配置
func LoadConfig(configPath string) (*Config, error) {
	config, err := Load(viper.GetViper(), configPath)
	if err != nil {
		return nil, err
	}
	globalConfig = config
	return config, nil
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if globalConfig == nil {
		config, err := LoadConfig("")
		if err != nil {
			panic(fmt.Sprintf("无法加载配置: %v", err))
		}
		return config
	}
	return globalConfig
}

// DefaultSettings 返回全部默认配置（viper 键名）
func DefaultSettings() map[string]any {
	v := viper.New()
	setDefaults(v)
	return v.AllSettings()
}

// CreateDefaultConfig 在 path 写入一份默认配置，格式由 format 决定
// 文件已存在时返回错误
func CreateDefaultConfig(path string, format OutputFormat) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	return OutputData(DefaultSettings(), format, f)
}
