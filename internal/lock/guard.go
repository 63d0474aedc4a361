package lock

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Toggler is the external capability that flips the machine-wide
// sleep-disabled setting. Calls are idempotent and may be repeated.
type Toggler interface {
	SetSleepDisabled(disabled bool) error
}

// Guard ties one process lifetime to the shared sleep setting: construction
// records the process in the registry (disabling sleep if it is the first
// live holder) and Release removes it (re-enabling sleep if it was the
// last). A process creates exactly one Guard and releases it on every exit
// path, including interrupt signals.
type Guard struct {
	store    *Store
	toggler  Toggler
	log      *slog.Logger
	released atomic.Bool
}

// Acquire records the calling process in the registry. When that takes the
// live count from zero, the toggler must succeed before the guard is
// considered held; on toggler failure the just-recorded identity is rolled
// back so a later process cannot find a phantom holder and skip the
// re-enable.
func Acquire(store *Store, toggler Toggler, log *slog.Logger) (*Guard, error) {
	if log == nil {
		log = slog.Default()
	}

	toggle, err := store.Update(OpAcquire)
	if err != nil {
		return nil, fmt.Errorf("acquire sleep lock: %w", err)
	}

	if toggle {
		log.Debug("first instance, disabling system sleep")
		if err := toggler.SetSleepDisabled(true); err != nil {
			if _, rbErr := store.Update(OpRelease); rbErr != nil {
				log.Warn("rolling back registry entry failed", "error", rbErr)
			}
			return nil, fmt.Errorf("disable system sleep: %w", err)
		}
	} else {
		log.Debug("other instances running, sleep already disabled")
	}

	return &Guard{store: store, toggler: toggler, log: log}, nil
}

// Release removes the process from the registry and re-enables sleep if no
// live holders remain. It may be called from both the normal exit path and
// a signal path; only the first call acts. Failures are reported, never
// returned: the process is exiting regardless, and a stale entry will be
// reclaimed by the next holder's liveness filter.
func (g *Guard) Release() {
	if g == nil || !g.released.CompareAndSwap(false, true) {
		return
	}

	toggle, err := g.store.Update(OpRelease)
	if err != nil {
		g.log.Warn("updating lock file during exit failed", "error", err)
		return
	}
	if !toggle {
		g.log.Debug("other instances still running, keeping sleep disabled")
		return
	}

	g.log.Debug("last instance exiting, re-enabling system sleep")
	if err := g.toggler.SetSleepDisabled(false); err != nil {
		g.log.Error("re-enabling system sleep failed", "error", err)
	}
}

// Released reports whether Release has already run.
func (g *Guard) Released() bool {
	return g.released.Load()
}
