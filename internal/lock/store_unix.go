//go:build unix

package lock

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const (
	lockExclusive = unix.LOCK_EX
	lockShared    = unix.LOCK_SH
)

// DefaultPath returns the registry location: a system runtime path when
// running as root, a per-uid temp path otherwise.
func DefaultPath() string {
	if os.Geteuid() == 0 {
		return "/var/run/caffeinate2.lock"
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("caffeinate2_%d.lock", os.Getuid()))
}

// DefaultMode returns the registry permission bits: world-readable for the
// root registry, owner-only for a per-user one in a shared temp directory.
func DefaultMode() os.FileMode {
	if os.Geteuid() == 0 {
		return 0o644
	}
	return 0o600
}

// openLocked opens the registry, creating it if absent, and takes a
// blocking whole-file advisory flock of the given kind. O_NOFOLLOW refuses
// to resolve a symlink at the final path component, so a link planted in a
// shared temp directory cannot redirect the write. Closing the returned
// file releases the lock.
func openLocked(path string, mode os.FileMode, how int) (*os.File, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_NOFOLLOW|unix.O_CLOEXEC, uint32(mode.Perm()))
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}
	if err := unix.Flock(fd, how); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	return os.NewFile(uintptr(fd), path), nil
}

// verifySameFile checks that path still names the file we locked. A caller
// that raced us could have renamed or removed the registry between our open
// and our flock; operating on the orphaned inode would silently lose
// entries. If the fresh stat fails the check is skipped, matching the
// conservative read side of the race.
func verifySameFile(f *os.File, path string) error {
	var fst, pst unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &fst); err != nil {
		return fmt.Errorf("fstat %s: %w", path, err)
	}
	if err := unix.Stat(path, &pst); err != nil {
		return nil
	}
	if fst.Ino != pst.Ino || fst.Dev != pst.Dev {
		return ErrReplaced
	}
	return nil
}
