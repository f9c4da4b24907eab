package indexfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// DefaultLockDir returns the per-user directory holding output locks
// (~/.cache/meshidx/locks on Linux). Falls back to the temp directory.
func DefaultLockDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "meshidx", "locks")
}

// PathLock is a cross-process advisory lock guarding one output path.
// The lock file lives in a separate lock directory so nothing extra
// appears next to the index files; its name is derived from the absolute
// output path, so every run targeting the same file shares it.
type PathLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewPathLock creates a lock in lockDir for the given output path.
func NewPathLock(lockDir, outputPath string) *PathLock {
	abs, err := filepath.Abs(outputPath)
	if err != nil {
		abs = filepath.Clean(outputPath)
	}
	sum := sha256.Sum256([]byte(abs))
	name := fmt.Sprintf("%s-%s.lock", filepath.Base(abs), hex.EncodeToString(sum[:8]))

	lockPath := filepath.Join(lockDir, name)
	return &PathLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// Lock acquires an exclusive lock, blocking until it is available.
func (l *PathLock) Lock() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	if err := l.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	l.locked = true
	return nil
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false if another process holds it.
func (l *PathLock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}

	l.locked = acquired
	return acquired, nil
}

// Unlock releases the lock. Safe to call on an unlocked PathLock.
func (l *PathLock) Unlock() error {
	if !l.locked {
		return nil
	}

	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// Path returns the lock file path.
func (l *PathLock) Path() string {
	return l.path
}
