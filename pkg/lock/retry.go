package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

const retryInterval = 100 * time.Millisecond

// RetryingLocker keeps trying a held lock for roughly the configured wait.
type RetryingLocker struct {
	next Locker
	wait time.Duration
}

// WithRetry wraps next; a zero wait returns next unchanged (single attempt).
func WithRetry(next Locker, wait time.Duration) Locker {
	if wait <= 0 {
		return next
	}
	return &RetryingLocker{next: next, wait: wait}
}

func (l *RetryingLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	var lastErr error
	leaseVal, err := failsafe.Get(
		func() (any, error) {
			lease, err := l.next.Acquire(ctx, key, ttl)
			lastErr = err
			return lease, err
		}, l.buildPolicy(),
	)
	if err != nil {
		if errors.Is(lastErr, ErrLockHeld) {
			return nil, ErrLockHeld
		}
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}

	lease, ok := leaseVal.(Lease)
	if !ok {
		return nil, fmt.Errorf("acquire lock %s: unexpected result", key)
	}
	return lease, nil
}

func (l *RetryingLocker) buildPolicy() retrypolicy.RetryPolicy[any] {
	retries := int(l.wait / retryInterval)
	if retries < 1 {
		retries = 1
	}
	return retrypolicy.Builder[any]().
		HandleErrors(ErrLockHeld).
		WithDelay(retryInterval).
		WithMaxRetries(retries).
		Build()
}
