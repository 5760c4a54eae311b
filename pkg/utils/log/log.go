// Package log 是 tooled 的全局 zerolog 日志
//
// 控制台输出写到 stderr，stdout 留给加载动画和命令的数据输出
package log

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/yeisme/tooled/pkg/configs"
)

// Logger 全局日志记录器
type Logger = *zerolog.Logger

var (
	globalLogger Logger
	consoleOut   io.Writer = os.Stderr
)

// InitLogger 按配置构建全局日志记录器
// 级别优先级: quiet > debug > verbose > log.level
func InitLogger(ctx context.Context, config *configs.LogConfig, appConfig *configs.AppConfig) Logger {
	var logger zerolog.Logger
	if appConfig.Quiet {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		logger = zerolog.New(io.Discard)
		return install(logger)
	}
	zerolog.SetGlobalLevel(resolveLevel(config, appConfig))

	lc := zerolog.New(newOutput(config)).With().Timestamp()
	if appConfig.Debug || appConfig.Verbose {
		lc = lc.Str("app", appConfig.Name).Ctx(ctx)
	}
	if appConfig.Debug {
		lc = lc.Caller()
	}
	logger = lc.Logger()
	return install(logger)
}

func install(logger zerolog.Logger) Logger {
	globalLogger = &logger
	log.Logger = logger
	return globalLogger
}

func resolveLevel(config *configs.LogConfig, appConfig *configs.AppConfig) zerolog.Level {
	switch {
	case appConfig.Debug:
		return zerolog.DebugLevel
	case appConfig.Verbose:
		return zerolog.InfoLevel
	default:
		return parseLogLevel(config.Level)
	}
}

// newOutput 根据 mode 选择 console / file / both，未知值按 console 处理
func newOutput(config *configs.LogConfig) io.Writer {
	switch strings.ToLower(config.Mode) {
	case "file":
		return fileWriter(config)
	case "both":
		return zerolog.MultiLevelWriter(consoleWriter(config.JSON), fileWriter(config))
	default:
		return consoleWriter(config.JSON)
	}
}

func consoleWriter(useJSON bool) io.Writer {
	if useJSON {
		return consoleOut
	}
	return zerolog.ConsoleWriter{Out: consoleOut, TimeFormat: "15:04:05"}
}

// fileWriter 使用 lumberjack 轮转，目录无法创建时退回控制台
func fileWriter(config *configs.LogConfig) io.Writer {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
		return consoleOut
	}
	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   true,
	}
}

// SetConsoleOutput 替换控制台输出并返回原值，需在 InitLogger 之前调用
func SetConsoleOutput(w io.Writer) io.Writer {
	prev := consoleOut
	consoleOut = w
	return prev
}

// GetLogger 返回全局日志记录器，未初始化时按默认配置初始化
func GetLogger() Logger {
	if globalLogger == nil {
		config := configs.GetConfig()
		return InitLogger(context.Background(), &config.Log, &config.App)
	}
	return globalLogger
}

// parseLogLevel 无法识别的级别按 info 处理
func parseLogLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return l
}

func Trace() *zerolog.Event { return GetLogger().Trace() }
func Debug() *zerolog.Event { return GetLogger().Debug() }
func Info() *zerolog.Event  { return GetLogger().Info() }
func Warn() *zerolog.Event  { return GetLogger().Warn() }
func Error() *zerolog.Event { return GetLogger().Error() }
func Fatal() *zerolog.Event { return GetLogger().Fatal() }
func Panic() *zerolog.Event { return GetLogger().Panic() }
