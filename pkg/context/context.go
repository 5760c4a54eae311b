// Package context 保存一次命令执行期间共享的配置、日志和 viper 实例
package context

import (
	"context"

	"github.com/spf13/viper"

	"github.com/yeisme/tooled/pkg/configs"
	"github.com/yeisme/tooled/pkg/utils/log"
)

// GlobalFlags 根命令的全局标志
type GlobalFlags struct {
	ConfigPath    string
	Debug         bool
	Verbose       bool
	Quiet         bool
	CPUProfile    string
	Trace         string
	VersionEnable bool
}

// TooledContext 命令执行上下文
type TooledContext struct {
	context.Context
	Config *configs.Config // 应用配置
	Logger log.Logger      // 日志记录器
	Viper  *viper.Viper
}

// InitTooledContext 加载配置并初始化日志；命令行标志优先于配置文件
func InitTooledContext(ctx context.Context, flags GlobalFlags) (*TooledContext, error) {
	v := viper.GetViper()
	config, err := configs.LoadConfig(flags.ConfigPath)
	if err != nil {
		return nil, err
	}

	if flags.Debug {
		config.App.Debug = true
	}
	if flags.Verbose {
		config.App.Verbose = true
	}
	if flags.Quiet {
		config.App.Quiet = true
	}

	logger := log.InitLogger(ctx, &config.Log, &config.App)

	return &TooledContext{
		Context: ctx,
		Config:  config,
		Logger:  logger,
		Viper:   v,
	}, nil
}
