//go:build unix && !darwin && !linux

package proc

import "errors"

// StartTime is unavailable here; identities degrade to bare-PID tracking,
// which gives up PID-reuse detection but keeps liveness filtering working.
func StartTime(pid int) (uint64, error) {
	return 0, errors.New("process start time not available on this platform")
}
