// Package runner drives the workload the tool keeps the machine awake for:
// a child command, or waiting on a foreign process to exit.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/Randomblock1/caffeinate2/internal/proc"
)

// pollInterval is how often WaitFor re-probes a foreign PID. Foreign
// processes are not our children, so there is nothing to wait(2) on.
const pollInterval = time.Second

// Run executes args through `/bin/sh -c`, forwarding the child's output
// line streams to stdout and stderr, and returns the child's exit code.
// Cancelling ctx kills the child. A non-zero child exit is not an error;
// failing to run the shell at all is.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", strings.Join(args, " "))
	cmd.Stdin = os.Stdin

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return 1, fmt.Errorf("stdout pipe: %w", err)
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return 1, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return 1, fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go forwardLines(&wg, outPipe, stdout)
	go forwardLines(&wg, errPipe, stderr)
	wg.Wait()

	err = cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal (including our ctx cancellation).
			code = 1
		}
		return code, nil
	default:
		return 1, fmt.Errorf("wait for command: %w", err)
	}
}

// forwardLines copies r to w line by line. Errors on the pipe just end the
// stream; the child's exit status is what matters.
func forwardLines(wg *sync.WaitGroup, r io.Reader, w io.Writer) {
	defer wg.Done()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}
}

// WaitFor blocks until the process with the given PID exits or ctx is
// done. It returns ctx.Err when interrupted, nil when the process is gone.
func WaitFor(ctx context.Context, pid int) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		alive, err := proc.Alive(pid)
		if err == nil && !alive {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Sleep blocks for d or until ctx is done, whichever comes first. It
// reports whether the full duration elapsed.
func Sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
