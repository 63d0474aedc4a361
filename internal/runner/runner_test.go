//go:build unix

package runner

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestRunForwardsStreams(t *testing.T) {
	var stdout, stderr strings.Builder

	code, err := Run(context.Background(), []string{"echo out; echo err >&2"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if got := stdout.String(); got != "out\n" {
		t.Errorf("stdout = %q, want %q", got, "out\n")
	}
	if got := stderr.String(); got != "err\n" {
		t.Errorf("stderr = %q, want %q", got, "err\n")
	}
}

func TestRunPropagatesExitCode(t *testing.T) {
	var stdout, stderr strings.Builder

	code, err := Run(context.Background(), []string{"exit 3"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
}

func TestRunJoinsArgs(t *testing.T) {
	var stdout, stderr strings.Builder

	code, err := Run(context.Background(), []string{"echo", "a", "b"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if got := stdout.String(); got != "a b\n" {
		t.Errorf("stdout = %q, want %q", got, "a b\n")
	}
}

func TestRunCancelledContextKillsChild(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var stdout, stderr strings.Builder
	start := time.Now()
	code, err := Run(ctx, []string{"sleep 60"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code == 0 {
		t.Error("killed child should not report success")
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("child outlived cancellation by %v", elapsed)
	}
}

func TestWaitForDeadProcess(t *testing.T) {
	// Spawn and reap a child so its PID is known-dead (modulo an
	// implausibly fast reuse).
	cmd := exec.Command("true")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	pid := cmd.Process.Pid
	if err := cmd.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := WaitFor(ctx, pid); err != nil {
		t.Errorf("WaitFor(dead pid) = %v, want nil", err)
	}
}

func TestWaitForCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// PID 1 outlives any test run.
	if err := WaitFor(ctx, 1); err == nil {
		t.Error("WaitFor(live pid) should return the context error on cancel")
	}
}

func TestSleep(t *testing.T) {
	if !Sleep(context.Background(), time.Millisecond) {
		t.Error("Sleep should report completion")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if Sleep(ctx, time.Hour) {
		t.Error("Sleep with cancelled context should report interruption")
	}
}
