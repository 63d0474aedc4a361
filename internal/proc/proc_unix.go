//go:build unix

package proc

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Alive sends the zero signal to pid, which delivers nothing but reports
// whether the process exists. ESRCH means it is gone. Any other error (for
// example EPERM probing another user's process) means it exists but we may
// not signal it; that is returned as an error so callers can resolve the
// ambiguity their own way.
func Alive(pid int) (bool, error) {
	err := unix.Kill(pid, 0)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, unix.ESRCH):
		return false, nil
	default:
		return false, err
	}
}
