// Package lock provides advisory, expiring, keyed locks.
package lock

import (
	"context"
	"errors"
	"time"
)

var ErrLockHeld = errors.New("lock: already held")

// Lease is a held lock. Release is safe to call more than once.
type Lease interface {
	Release(ctx context.Context) error
}

type Locker interface {
	// Acquire takes the lock for key without blocking, or returns ErrLockHeld.
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}
