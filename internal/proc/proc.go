package proc

import (
	"os"

	"github.com/Randomblock1/caffeinate2/internal/lock"
)

// Self returns the identity of the calling process. When the platform
// start-time query fails the start time is zero and tracking degrades to
// bare-PID matching.
func Self() lock.Identity {
	pid := os.Getpid()
	start, err := StartTime(pid)
	if err != nil {
		return lock.Identity{PID: pid}
	}
	return lock.Identity{PID: pid, StartTime: start}
}

// Probe reports whether id still denotes the same running process. It is
// the default lock.ProbeFunc: a PID that no longer exists is dead; a PID
// that exists but was started at a different time was recycled by an
// unrelated process and counts as dead too. Whenever the answer cannot be
// determined (permission errors and the like) the entry is presumed alive,
// so a holder is never reclaimed prematurely.
func Probe(id lock.Identity) bool {
	alive, err := Alive(id.PID)
	if err != nil {
		return true
	}
	if !alive {
		return false
	}
	if id.StartTime == 0 {
		// Bare-PID entry; nothing further to compare.
		return true
	}

	start, err := StartTime(id.PID)
	if err != nil {
		return true
	}
	return start == id.StartTime
}
