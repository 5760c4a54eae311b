// Package indicator 提供一个终端加载动画，在长时间阻塞的调用期间于同一行循环显示字形
// 动画在后台 goroutine 中运行，Stop 会等待其退出后再擦除当前行并打印结束消息
package indicator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yeisme/tooled/pkg/style"
)

var (
	// ErrInvalidConfiguration 构造参数不合法（帧间隔非正数或样式未知）
	ErrInvalidConfiguration = errors.New("invalid indicator configuration")
	// ErrAlreadyStarted Indicator 只能启动一次
	ErrAlreadyStarted = errors.New("indicator already started")
)

const (
	DefaultStartMessage = "Loading..."
	DefaultEndMessage   = "Done!"
	DefaultInterval     = 100 * time.Millisecond

	fallbackWidth = 80
)

// Config 描述一次动画的显示参数
type Config struct {
	StartMessage string
	EndMessage   string
	Interval     time.Duration
	Style        Style
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		StartMessage: DefaultStartMessage,
		EndMessage:   DefaultEndMessage,
		Interval:     DefaultInterval,
		Style:        StyleRotate,
	}
}

// normalize 填充空消息和空样式的默认值，并校验帧间隔与样式
func (c Config) normalize() (Config, error) {
	if c.StartMessage == "" {
		c.StartMessage = DefaultStartMessage
	}
	if c.EndMessage == "" {
		c.EndMessage = DefaultEndMessage
	}
	if c.Interval <= 0 {
		return c, fmt.Errorf("%w: frame interval must be positive, got %s", ErrInvalidConfiguration, c.Interval)
	}
	st, err := ParseStyle(string(c.Style))
	if err != nil {
		return c, err
	}
	c.Style = st
	return c, nil
}

// Option 调整 Indicator 的输出目标等可选项
type Option func(*Indicator)

// WithWriter 设置输出目标，默认 os.Stdout
func WithWriter(w io.Writer) Option {
	return func(ind *Indicator) {
		ind.out = w
	}
}

// WithWidth 设置擦除当前行时使用的宽度来源，默认探测终端宽度
func WithWidth(width func() int) Option {
	return func(ind *Indicator) {
		ind.width = width
	}
}

// Indicator 是一次性的加载动画：New -> Start -> Stop
// 再次调用 Start 会返回 ErrAlreadyStarted
type Indicator struct {
	cfg   Config
	out   io.Writer
	width func() int

	mu       sync.Mutex
	done     atomic.Bool
	started  atomic.Bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// New 创建一个新的 Indicator，不会启动任何 goroutine
func New(cfg Config, opts ...Option) (*Indicator, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	ind := &Indicator{
		cfg:    cfg,
		out:    os.Stdout,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ind)
	}
	if ind.width == nil {
		out := ind.out
		ind.width = func() int { return style.TerminalWidth(out) }
	}
	return ind, nil
}

// Config 返回规范化后的配置
func (ind *Indicator) Config() Config {
	return ind.cfg
}

// Done 报告 Stop 是否已经被调用
func (ind *Indicator) Done() bool {
	return ind.done.Load()
}

// Start 在后台启动动画并立即返回
func (ind *Indicator) Start() error {
	if !ind.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	go ind.animate()
	return nil
}

func (ind *Indicator) animate() {
	defer close(ind.doneCh)
	ticker := time.NewTicker(ind.cfg.Interval)
	defer ticker.Stop()

	for glyph := range ind.cfg.Style.Frames() {
		if ind.done.Load() {
			return
		}
		ind.printf("\r%s %s ", ind.cfg.StartMessage, glyph)
		select {
		case <-ind.stopCh:
			return
		case <-ticker.C:
		}
	}
}

// Stop 通知动画停止并等待其退出，然后用空格覆盖当前行并打印结束消息
// 多次调用只生效一次
func (ind *Indicator) Stop() {
	ind.stopOnce.Do(func() {
		ind.done.Store(true)
		close(ind.stopCh)
		if ind.started.Load() {
			<-ind.doneCh
		}

		width := ind.width()
		if width <= 0 {
			width = fallbackWidth
		}
		ind.printf("\r%s", strings.Repeat(" ", width))
		ind.printf("\r%s\n", ind.cfg.EndMessage)
	})
}

func (ind *Indicator) printf(format string, args ...any) {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	_, _ = fmt.Fprintf(ind.out, format, args...)
}

// Run 在动画运行期间执行 body，无论 body 返回错误还是 panic 都会先完成清理
// body 的错误原样返回
func Run(cfg Config, body func() error, opts ...Option) error {
	ind, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	if err := ind.Start(); err != nil {
		return err
	}
	defer ind.Stop()
	return body()
}

// RunContext 与 Run 相同，body 接收 ctx；ctx 取消不会提前停止动画
func RunContext(ctx context.Context, cfg Config, body func(context.Context) error, opts ...Option) error {
	return Run(cfg, func() error { return body(ctx) }, opts...)
}
