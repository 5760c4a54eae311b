package configs

import (
	"github.com/spf13/viper"
)

// AppConfig 应用配置
type AppConfig struct {
	Name    string        `mapstructure:"name"`
	Debug   bool          `mapstructure:"debug"`
	Verbose bool          `mapstructure:"verbose"`
	Quiet   bool          `mapstructure:"quiet"` // 是否安静模式，禁止所有日志输出
	Hotload HotloadConfig `mapstructure:"hotload"`
}

// HotloadConfig 监听输入文件变化（track sum --watch）
type HotloadConfig struct {
	Debounce int `mapstructure:"debounce"` // 防抖时间，毫秒
}

func setAppConfigDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "tooled")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.verbose", false)
	v.SetDefault("app.quiet", false)
	v.SetDefault("app.hotload.debounce", 300)
}
