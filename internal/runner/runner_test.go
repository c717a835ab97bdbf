package runner

import (
	"context"
	"strings"
	"testing"
	"time"
)

func newTestRunner() *Runner {
	return &Runner{
		Timeout:   10 * time.Second,
		MaxOutput: 1 << 20,
	}
}

func TestRun_Success(t *testing.T) {
	r := newTestRunner()
	res, err := r.Run(context.Background(), []string{"echo", "hello"}, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if !strings.Contains(string(res.Stdout), "hello") {
		t.Errorf("Stdout = %q, want to contain 'hello'", res.Stdout)
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	r := newTestRunner()
	res, err := r.Run(context.Background(), []string{"/usr/bin/false"}, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode == 0 {
		t.Error("ExitCode = 0, want non-zero")
	}
}

func TestRun_BinaryNotFound(t *testing.T) {
	r := newTestRunner()
	_, err := r.Run(context.Background(), []string{"nonexistent-binary-xyz-123"}, t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "nonexistent-binary-xyz-123") {
		t.Errorf("error = %q, want to mention the binary name", err)
	}
}

func TestRun_EmptyArgv(t *testing.T) {
	r := newTestRunner()
	_, err := r.Run(context.Background(), nil, t.TempDir())
	if err == nil {
		t.Fatal("expected error for empty argv")
	}
}

func TestRun_RelativeDir(t *testing.T) {
	r := newTestRunner()
	_, err := r.Run(context.Background(), []string{"echo"}, "relative/dir")
	if err == nil {
		t.Fatal("expected error for relative working directory")
	}
	if !strings.Contains(err.Error(), "not absolute") {
		t.Errorf("error = %q, want 'not absolute'", err)
	}
}

func TestRun_WorkingDirectory(t *testing.T) {
	r := newTestRunner()
	dir := t.TempDir()
	res, err := r.Run(context.Background(), []string{"pwd"}, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := strings.TrimSpace(string(res.Stdout))
	// macOS resolves /tmp symlinks, so compare suffixes.
	if !strings.HasSuffix(got, strings.TrimPrefix(dir, "/private")) {
		t.Errorf("pwd = %q, want %q", got, dir)
	}
}

func TestRun_Cancellation(t *testing.T) {
	r := &Runner{MaxOutput: 1 << 20}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	res, err := r.Run(ctx, []string{"sleep", "10"}, t.TempDir())
	if time.Since(start) > 5*time.Second {
		t.Fatal("cancellation did not terminate the child process")
	}
	// Killing the child produces either an ExitError result or an exec error,
	// depending on the platform; both are acceptable.
	if err == nil && res.ExitCode == 0 {
		t.Error("expected non-zero exit or error after cancellation")
	}
}

func TestRun_OutputTruncation(t *testing.T) {
	r := newTestRunner()
	r.MaxOutput = 100 // very small cap

	res, err := r.Run(context.Background(), []string{"sh", "-c", "dd if=/dev/zero bs=200 count=1 2>/dev/null"}, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Truncated {
		t.Error("Truncated = false, want true")
	}
	if len(res.Stdout) > r.MaxOutput {
		t.Errorf("len(Stdout) = %d, want <= %d", len(res.Stdout), r.MaxOutput)
	}
}

func TestCombined(t *testing.T) {
	res := &Result{Stdout: []byte("out"), Stderr: []byte("err")}
	if got := res.Combined(); got != "out\nerr" {
		t.Errorf("Combined() = %q, want %q", got, "out\nerr")
	}
}
