package sync

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RemoteLock is an advisory lock on the remote root, held for the duration
// of a push or pull so two invocations against the same remote do not race
// on the manifest or on directory cleanup. The lock does not change the
// on-disk manifest format; removing a stale lock file by hand is always
// safe.
type RemoteLock struct {
	fl *flock.Flock
}

// AcquireRemoteLock takes the lock file at remoteRoot without blocking.
// A second holder gets ErrRemoteLocked.
func AcquireRemoteLock(remoteRoot string) (*RemoteLock, error) {
	fl := flock.New(filepath.Join(remoteRoot, LockFileName))

	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock remote root %s: %w", remoteRoot, err)
	}
	if !locked {
		return nil, ErrRemoteLocked
	}

	return &RemoteLock{fl: fl}, nil
}

// Release unlocks and removes the lock file.
func (l *RemoteLock) Release() error {
	if !l.fl.Locked() {
		return nil
	}
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock remote root: %w", err)
	}
	return os.Remove(l.fl.Path())
}
