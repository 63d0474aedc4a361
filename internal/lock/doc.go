// Package lock coordinates the machine-wide sleep-disabled setting across
// independent caffeinate2 processes.
//
// The setting is global and externally owned: whichever process needs it
// first must switch it on, and only the last process out may switch it off.
// The package tracks holders in a shared lock file, one identity per line,
// and reference-counts them on every update.
//
// # Architecture
//
// [Identity] names one running instance as a (PID, start time) pair; the
// start time defends against PID reuse. [Apply] is the pure reference-count
// step: given the live set and an operation it computes the next set and
// whether the global setting should flip. [Filter] reclaims entries whose
// process has exited, using a liveness probe. [Store] binds the two to the
// on-disk registry under an exclusive advisory flock, and [Guard] ties a
// process lifetime to exactly one acquire and one release.
//
// # Crash recovery
//
// A process killed without running its release leaves its identity behind.
// That entry is reclaimed by whichever process next updates the registry:
// the probe reports the PID dead (or recycled) and the filter drops it.
//
// # Basic Usage
//
//	store := lock.NewStore(lock.DefaultPath(), lock.DefaultMode(), self, probe, log)
//
//	guard, err := lock.Acquire(store, controller, log)
//	if err != nil {
//		return err
//	}
//	defer guard.Release()
package lock
