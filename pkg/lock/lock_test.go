package lock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockerExclusive(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	lease, err := l.Acquire(ctx, "retro:1", time.Minute)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "retro:1", time.Minute)
	assert.ErrorIs(t, err, ErrLockHeld)

	// other keys are independent
	other, err := l.Acquire(ctx, "retro:2", time.Minute)
	require.NoError(t, err)
	require.NoError(t, other.Release(ctx))

	require.NoError(t, lease.Release(ctx))
	again, err := l.Acquire(ctx, "retro:1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}

func TestLocalLockerExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLocalLocker()
	l.nowFn = func() time.Time { return now }

	stale, err := l.Acquire(ctx, "retro:1", time.Second)
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	fresh, err := l.Acquire(ctx, "retro:1", time.Second)
	require.NoError(t, err)

	// the expired lease must not release the new holder's lock
	require.NoError(t, stale.Release(ctx))
	_, err = l.Acquire(ctx, "retro:1", time.Second)
	assert.ErrorIs(t, err, ErrLockHeld)

	require.NoError(t, fresh.Release(ctx))
}

type flakyLocker struct {
	failures int32
	calls    atomic.Int32
}

func (f *flakyLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	if f.calls.Add(1) <= f.failures {
		return nil, ErrLockHeld
	}
	return &localLease{locker: NewLocalLocker(), key: key}, nil
}

func TestWithRetryEventuallyAcquires(t *testing.T) {
	inner := &flakyLocker{failures: 2}
	l := WithRetry(inner, time.Second)

	lease, err := l.Acquire(context.Background(), "retro:1", time.Minute)
	require.NoError(t, err)
	assert.NotNil(t, lease)
	assert.Equal(t, int32(3), inner.calls.Load())
}

func TestWithRetryGivesUp(t *testing.T) {
	inner := &flakyLocker{failures: 1000}
	l := WithRetry(inner, 250*time.Millisecond)

	_, err := l.Acquire(context.Background(), "retro:1", time.Minute)
	assert.ErrorIs(t, err, ErrLockHeld)
	assert.Equal(t, int32(3), inner.calls.Load())
}

func TestWithRetryZeroWaitIsSingleAttempt(t *testing.T) {
	inner := &flakyLocker{failures: 1}
	l := WithRetry(inner, 0)

	_, err := l.Acquire(context.Background(), "retro:1", time.Minute)
	assert.ErrorIs(t, err, ErrLockHeld)
	assert.Equal(t, int32(1), inner.calls.Load())
}
