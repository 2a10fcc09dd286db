package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalLocker is an in-process Locker used when Redis is not configured.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]localEntry
	nowFn func() time.Time
}

type localEntry struct {
	token   string
	expires time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		held:  make(map[string]localEntry),
		nowFn: time.Now,
	}
}

func (l *LocalLocker) Acquire(_ context.Context, key string, ttl time.Duration) (Lease, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	if e, ok := l.held[key]; ok && now.Before(e.expires) {
		return nil, ErrLockHeld
	}

	token := uuid.NewString()
	l.held[key] = localEntry{token: token, expires: now.Add(ttl)}
	return &localLease{locker: l, key: key, token: token}, nil
}

type localLease struct {
	locker *LocalLocker
	key    string
	token  string
}

func (r *localLease) Release(context.Context) error {
	r.locker.mu.Lock()
	defer r.locker.mu.Unlock()

	if e, ok := r.locker.held[r.key]; ok && e.token == r.token {
		delete(r.locker.held, r.key)
	}
	return nil
}
