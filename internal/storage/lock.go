package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// Directory locking. The lock is an exclusive flock(2) on a .lock file
// inside the directory, so every process sharing a data root agrees on the
// same protocol. The lock file stays on disk after release: unlinking it
// would let a concurrent acquirer lock a dangling inode.

const (
	lockFileName     = ".lock"
	lockAttempts     = 5
	lockInitialDelay = 50 * time.Millisecond
	lockMaxDelay     = 500 * time.Millisecond
)

// ErrLockTimeout is returned when the lock could not be acquired after all
// attempts. Callers must treat this as a hard failure rather than proceed
// without mutual exclusion.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// WithLock runs fn while holding an exclusive advisory lock on dir,
// creating dir first if needed. The lock is released on every return path,
// including when fn fails.
func WithLock(dir string, fn func() error) error {
	if err := EnsureDir(dir); err != nil {
		return err
	}
	f, err := acquireLock(filepath.Join(dir, lockFileName))
	if err != nil {
		return err
	}
	defer releaseLock(f)
	return fn()
}

func acquireLock(path string) (*os.File, error) {
	delay := lockInitialDelay
	for attempt := 1; ; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to open lock file %s: %w", path, err)
		}
		err = flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if err == nil {
			return f, nil
		}
		_ = f.Close()
		if !errors.Is(err, syscall.EWOULDBLOCK) && !errors.Is(err, syscall.EAGAIN) {
			return nil, fmt.Errorf("failed to lock %s: %w", path, err)
		}
		if attempt == lockAttempts {
			return nil, fmt.Errorf("%s still held after %d attempts: %w", path, lockAttempts, ErrLockTimeout)
		}
		time.Sleep(delay)
		delay *= 2
		if delay > lockMaxDelay {
			delay = lockMaxDelay
		}
	}
}

func releaseLock(f *os.File) {
	// Unlock before close; the file itself stays on disk.
	_ = flock(int(f.Fd()), syscall.LOCK_UN)
	_ = f.Close()
}

// flock retries when interrupted by a signal.
func flock(fd int, how int) error {
	for {
		err := syscall.Flock(fd, how)
		if err != syscall.EINTR { //nolint:errorlint // Flock returns bare Errno.
			return err
		}
	}
}
