// Package executor 执行外部命令，捕获输出并把失败包装为带 stderr 的 ExecError
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// ExecError 命令以非零状态结束或无法启动
type ExecError struct {
	Cmd    string
	Args   []string
	Stderr string
	Err    error // 通常是 *exec.ExitError
}

func (e *ExecError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "command failed: %s", strings.Join(append([]string{e.Cmd}, e.Args...), " "))
	if code := e.ExitCode(); code >= 0 {
		fmt.Fprintf(&b, ", exit code %d", code)
	} else {
		fmt.Fprintf(&b, ", %v", e.Err)
	}
	if stderr := e.CleanStderr(); stderr != "" {
		b.WriteString("\nstderr:")
		for _, line := range strings.Split(stderr, "\n") {
			b.WriteString("\n\t" + line)
		}
	}
	return b.String()
}

func (e *ExecError) Unwrap() error { return e.Err }

// CleanStderr 去掉 ANSI 颜色码和首尾空白
func (e *ExecError) CleanStderr() string {
	return strings.TrimSpace(ansiEscape.ReplaceAllString(e.Stderr, ""))
}

// ExitCode 进程退出码，进程没有正常退出时为 -1
func (e *ExecError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Executor 单次命令执行，With* 方法可链式调用
type Executor struct {
	cmd *exec.Cmd
}

// NewExecutor 创建不受 context 控制的执行器
func NewExecutor(name string, args ...string) *Executor {
	return NewExecutorContext(context.Background(), name, args...)
}

// NewExecutorContext ctx 结束时进程会被杀死
func NewExecutorContext(ctx context.Context, name string, args ...string) *Executor {
	return &Executor{cmd: exec.CommandContext(ctx, name, args...)}
}

func (e *Executor) String() string {
	return strings.Join(e.cmd.Args, " ")
}

// WithDir 设置工作目录，空字符串表示当前目录
func (e *Executor) WithDir(dir string) *Executor {
	e.cmd.Dir = dir
	return e
}

// WithEnv 在当前进程环境之上追加 KEY=VALUE
func (e *Executor) WithEnv(envs ...string) *Executor {
	if len(envs) > 0 {
		e.cmd.Env = append(e.cmd.Environ(), envs...)
	}
	return e
}

// Run 执行命令并返回捕获的 stdout / stderr，失败时两者依然返回
func (e *Executor) Run() (stdout, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer
	e.cmd.Stdout = &outBuf
	e.cmd.Stderr = &errBuf

	if runErr := e.cmd.Run(); runErr != nil {
		err = &ExecError{
			Cmd:    e.cmd.Args[0],
			Args:   e.cmd.Args[1:],
			Stderr: errBuf.String(),
			Err:    runErr,
		}
	}
	return outBuf.String(), errBuf.String(), err
}
