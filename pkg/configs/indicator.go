package configs

import (
	"time"

	"github.com/spf13/viper"
)

// IndicatorConfig 加载动画配置
type IndicatorConfig struct {
	StartMessage string        `mapstructure:"start_message"`
	EndMessage   string        `mapstructure:"end_message"`
	Interval     time.Duration `mapstructure:"interval"` // 帧间隔，例如 100ms
	Style        string        `mapstructure:"style"`    // rotate, build, destroy, shuffle
}

func setIndicatorConfigDefaults(v *viper.Viper) {
	v.SetDefault("indicator.start_message", "Loading...")
	v.SetDefault("indicator.end_message", "Done!")
	v.SetDefault("indicator.interval", "100ms")
	v.SetDefault("indicator.style", "rotate")
}
