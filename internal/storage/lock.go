package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the catalog lock.
var ErrLocked = errors.New("catalog is in use by another cinelog process")

// Lock is an exclusive advisory lock on a catalog file.
type Lock struct {
	lock *flock.Flock
}

// LockPath returns the lock file used for a catalog path.
func LockPath(catalogPath string) string {
	return catalogPath + ".lock"
}

// AcquireLock takes the catalog lock without blocking.
func AcquireLock(catalogPath string) (*Lock, error) {
	path := LockPath(catalogPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrLocked, path)
	}
	return &Lock{lock: fl}, nil
}

// Release drops the lock. It is safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
