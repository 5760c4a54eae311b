// Package hotload 监听文件变化，在防抖后调用钩子
package hotload

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yeisme/tooled/pkg/utils/log"
)

// Func 文件变化后执行的钩子
type Func func()

// DefaultDebounce 默认防抖时长
const DefaultDebounce = 300 * time.Millisecond

// WatchFile 监听单个文件直到 ctx 结束；连续的变化在 debounce 内合并为一次 hook 调用，hook 的多次调用不会重叠
//
// 监听的是文件所在目录，这样编辑器以“写临时文件再重命名”的方式保存时也能收到事件
func WatchFile(ctx context.Context, path string, debounce time.Duration, hook Func) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建 watcher 失败: %w", err)
	}
	defer func() {
		if cerr := watcher.Close(); cerr != nil {
			log.Error().Msgf("关闭 watcher 失败: %v", cerr)
		}
	}()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("监听 %s 失败: %w", path, err)
	}
	log.Info().Str("file", path).Dur("debounce", debounce).Msg("watching file, press Ctrl+C to exit")

	d := newDebouncer(debounce, hook)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug().Str("op", ev.Op.String()).Str("file", ev.Name).Msg("file changed")
			d.trigger()
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(werr).Msg("watcher error")
		}
	}
}
