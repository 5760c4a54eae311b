package hotload

import (
	"sync"
	"time"
)

// debouncer 在最后一次 trigger 之后等待 wait 再执行 fn
// fn 的多次执行互斥，上一次未结束时新的一次会等待它完成
type debouncer struct {
	mu    sync.Mutex
	run   sync.Mutex
	wait  time.Duration
	fn    Func
	timer *time.Timer
}

func newDebouncer(wait time.Duration, fn Func) *debouncer {
	return &debouncer{wait: wait, fn: fn}
}

// trigger 启动或重置定时器
func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Reset(d.wait)
		return
	}
	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()

		d.run.Lock()
		defer d.run.Unlock()
		d.fn()
	})
}

// stop 取消尚未触发的调用
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
