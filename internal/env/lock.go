package env

import (
	"VaultSync/internal/logger"
	"VaultSync/internal/paths"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 50 * time.Millisecond

// ErrLocked is returned when another run holds the env file lock past the wait.
var ErrLocked = errors.New("env file is locked by another run")

// Lock holds the advisory lock that serialises runs against one env file.
type Lock struct {
	flock *flock.Flock
}

// AcquireLock takes the lock for envFile, waiting up to wait for a concurrent
// run to release it. A zero wait tries exactly once.
func AcquireLock(ctx context.Context, envFile string, wait time.Duration) (*Lock, error) {
	lockPath := paths.GetLockFilePath(envFile)
	fl := flock.New(lockPath)
	logger.Debug(ctx, "Acquiring lock '{{_File_}}%s{{|-|}}'.", lockPath)

	var (
		locked bool
		err    error
	)
	if wait <= 0 {
		locked, err = fl.TryLock()
	} else {
		lockCtx, cancel := context.WithTimeout(ctx, wait)
		defer cancel()
		locked, err = fl.TryLockContext(lockCtx, lockRetryDelay)
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s (waited %s)", ErrLocked, lockPath, wait)
	}
	return &Lock{flock: fl}, nil
}

// Release drops the lock. The lock file itself is left in place so that a
// concurrent run never locks a file that is about to be unlinked.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	return l.flock.Unlock()
}
