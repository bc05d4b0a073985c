package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWithLockCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	ran := false
	err := WithLock(dir, func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("WithLock: %v", err)
	}
	if !ran {
		t.Fatal("fn did not run")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, lockFileName)); err != nil {
		t.Errorf("lock file not created: %v", err)
	}
}

func TestWithLockReleasesOnError(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")
	if err := WithLock(dir, func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("WithLock = %v, want %v", err, boom)
	}
	// The failed call must have released the lock.
	if err := WithLock(dir, func() error { return nil }); err != nil {
		t.Errorf("lock still held after failing fn: %v", err)
	}
}

func TestWithLockMutualExclusion(t *testing.T) {
	dir := t.TempDir()
	var inside atomic.Int32
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := WithLock(dir, func() error {
				if !inside.CompareAndSwap(0, 1) {
					t.Error("two holders inside the critical section")
				}
				time.Sleep(time.Millisecond)
				inside.Store(0)
				return nil
			})
			if err != nil {
				t.Errorf("WithLock: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestWithLockTimesOutWhileHeld(t *testing.T) {
	dir := t.TempDir()
	held, err := acquireLock(filepath.Join(dir, lockFileName))
	if err != nil {
		t.Fatalf("failed to take lock: %v", err)
	}
	defer releaseLock(held)

	start := time.Now()
	err = WithLock(dir, func() error {
		t.Error("fn ran while lock was held elsewhere")
		return nil
	})
	if !errors.Is(err, ErrLockTimeout) {
		t.Fatalf("WithLock = %v, want ErrLockTimeout", err)
	}
	// Four backoff sleeps: 50 + 100 + 200 + 400 ms.
	if elapsed := time.Since(start); elapsed < 700*time.Millisecond {
		t.Errorf("gave up after %v, expected the full retry budget", elapsed)
	}
}

func TestWithLockKeepsLockFile(t *testing.T) {
	dir := t.TempDir()
	if err := WithLock(dir, func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	// The lock file must survive release so the flock inode stays stable
	// for other processes.
	if _, err := os.Stat(filepath.Join(dir, lockFileName)); err != nil {
		t.Errorf("lock file removed after release: %v", err)
	}
}
