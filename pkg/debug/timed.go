package debug

import (
	"fmt"
	"io"
	"time"
)

// Timed 包装 fn，每次调用后打印耗时（毫秒）
func Timed[T any](w io.Writer, name string, fn func() T) func() T {
	return func() T {
		start := time.Now()
		result := fn()
		elapsed := time.Since(start)
		fmt.Fprintf(w, "Function %s Time = %6.3fms\n", name, float64(elapsed)/float64(time.Millisecond))
		return result
	}
}

// TimedErr 与 Timed 相同，用于只返回 error 的函数
func TimedErr(w io.Writer, name string, fn func() error) func() error {
	return Timed(w, name, fn)
}
