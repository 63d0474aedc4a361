package lock

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Sentinel errors returned by store operations.
var (
	// ErrReplaced is returned when the lock file path stops naming the file
	// that was locked, i.e. the registry was swapped out concurrently.
	ErrReplaced = errors.New("lock file was replaced during acquisition")
)

// Store provides atomic, exclusive read-modify-write access to the on-disk
// registry. The file is created lazily, never deleted, and fully rewritten
// on every mutation; an empty file means "no holders". The advisory flock
// is held only for the duration of a single update, not while the guard is
// logically held.
type Store struct {
	path  string
	mode  os.FileMode
	self  Identity
	probe ProbeFunc
	log   *slog.Logger
}

// NewStore creates a Store for the registry at path. self is the calling
// process's identity; probe decides liveness of everyone else's.
func NewStore(path string, mode os.FileMode, self Identity, probe ProbeFunc, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{path: path, mode: mode, self: self, probe: probe, log: log}
}

// Self returns the identity the store records for the calling process.
func (s *Store) Self() Identity {
	return s.self
}

// Update runs one locked read-filter-apply-rewrite cycle for op and reports
// whether the global sleep setting should flip. On any error the registry
// is left as it was and the caller must treat the update as not having
// happened.
func (s *Store) Update(op Op) (bool, error) {
	f, err := openLocked(s.path, s.mode, lockExclusive)
	if err != nil {
		return false, err
	}
	defer f.Close() // releases the flock

	if err := verifySameFile(f, s.path); err != nil {
		return false, err
	}

	set, err := readRegistry(f)
	if err != nil {
		return false, fmt.Errorf("read registry: %w", err)
	}

	kept, dropped := Filter(set, s.self, s.probe)
	for _, id := range dropped {
		s.log.Debug("removing stale entry from registry", "entry", id.String())
	}

	next, toggle := Apply(kept, s.self, op)

	if err := writeRegistry(f, next); err != nil {
		return false, fmt.Errorf("rewrite registry: %w", err)
	}

	s.log.Debug("registry updated",
		"op", op.String(), "holders", len(next), "toggle", toggle)
	return toggle, nil
}

// Snapshot returns the registry contents under a shared lock, without
// filtering or mutation. Used for status display.
func (s *Store) Snapshot() ([]Identity, error) {
	f, err := openLocked(s.path, s.mode, lockShared)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set, err := readRegistry(f)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	return set.Identities(), nil
}

// Path returns the registry file location.
func (s *Store) Path() string {
	return s.path
}

// readRegistry parses newline-separated identity records. Unparseable lines
// are skipped, never fatal: a corrupt line must not wedge every future
// holder.
func readRegistry(r io.Reader) (Set, error) {
	set := make(Set)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if id, ok := ParseIdentity(scanner.Text()); ok {
			set[id] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

// writeRegistry truncates the file and rewrites the full set.
func writeRegistry(f *os.File, set Set) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	for id := range set {
		if _, err := fmt.Fprintln(w, id.String()); err != nil {
			return err
		}
	}
	return w.Flush()
}
