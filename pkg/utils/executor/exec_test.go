package executor

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestRunCapturesOutput(t *testing.T) {
	skipOnWindows(t)
	stdout, stderr, err := NewExecutor("sh", "-c", "echo out; echo err 1>&2").Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(stdout) != "out" || strings.TrimSpace(stderr) != "err" {
		t.Errorf("stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestRunExitError(t *testing.T) {
	skipOnWindows(t)
	_, _, err := NewExecutor("sh", "-c", "printf '\\033[31mboom\\033[0m' 1>&2; exit 3").Run()
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecError, got %T", err)
	}
	if execErr.ExitCode() != 3 {
		t.Errorf("exit code = %d, want 3", execErr.ExitCode())
	}
	if execErr.CleanStderr() != "boom" {
		t.Errorf("CleanStderr() = %q", execErr.CleanStderr())
	}
	if !strings.Contains(err.Error(), "exit code 3") {
		t.Errorf("error message missing exit code: %s", err)
	}
}

func TestWithDirAndEnv(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	stdout, _, err := NewExecutor("sh", "-c", `echo "$TOOLED_X"; pwd`).WithDir(dir).WithEnv("TOOLED_X=42").Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 || lines[0] != "42" || !strings.HasSuffix(lines[1], filepath.Base(dir)) {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestContextCancel(t *testing.T) {
	skipOnWindows(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, _, err := NewExecutorContext(ctx, "sleep", "5").Run()
	if err == nil {
		t.Fatal("expected error when context expires")
	}
	if time.Since(start) > 3*time.Second {
		t.Error("process was not killed on context cancel")
	}
}
