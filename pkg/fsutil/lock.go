package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LockSuffix is appended to a path to name its lock file.
const LockSuffix = ".lock"

// FileLock is an advisory lock held on a sidecar lock file.
// Only cooperating gowiki processes honour it.
type FileLock struct {
	path string
	file *os.File
}

// Lock blocks until it holds an exclusive advisory lock for path. The lock
// file is path+LockSuffix and is left in place after Unlock.
func Lock(ctx context.Context, path string) (*FileLock, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("lock: %w", ctx.Err())
	default:
	}

	lockPath := path + LockSuffix
	if err := os.MkdirAll(filepath.Dir(lockPath), DefaultDirMode); err != nil {
		return nil, classify("create directory", filepath.Dir(lockPath), err)
	}

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, DefaultFileMode)
	if err != nil {
		return nil, classify("open lock", lockPath, err)
	}

	if err := lockFile(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("lock %s: %w", lockPath, err)
	}

	return &FileLock{path: lockPath, file: file}, nil
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

// Unlock releases the lock. Calling it more than once is a no-op.
func (l *FileLock) Unlock() error {
	if l == nil || l.file == nil {
		return nil
	}

	file := l.file
	l.file = nil

	unlockErr := unlockFile(file)
	closeErr := file.Close()

	if unlockErr != nil {
		return fmt.Errorf("unlock %s: %w", l.path, unlockErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close lock %s: %w", l.path, closeErr)
	}
	return nil
}
