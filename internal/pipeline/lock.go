package pipeline

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another run holds the state-directory lock.
var ErrLocked = errors.New("another optimize-images run is in progress")

type runLock struct {
	path string
	lock *flock.Flock
}

func acquireLock(path string) (*runLock, error) {
	l := flock.New(path)
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
	}
	return &runLock{path: path, lock: l}, nil
}

func (l *runLock) release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
