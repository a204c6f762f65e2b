package lock

import (
	"context"
	"sync"
	"time"
)

// Locker is a non-blocking mutual exclusion primitive keyed by string.
type Locker interface {
	// Acquire tries to take the lock for key.
	// Returns false without error if somebody else holds it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees the lock for key.
	Release(ctx context.Context, key string) error
}

// LocalLock is an in-process Locker for single-binary use.
type LocalLock struct {
	mu    sync.Mutex
	held  map[string]time.Time // key -> expiry, zero means no expiry
	clock func() time.Time
}

func NewLocalLock() *LocalLock {
	return &LocalLock{
		held:  make(map[string]time.Time),
		clock: time.Now,
	}
}

func (l *LocalLock) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if expiry, ok := l.held[key]; ok && (expiry.IsZero() || now.Before(expiry)) {
		return false, nil
	}

	var expiry time.Time
	if ttl > 0 {
		expiry = now.Add(ttl)
	}
	l.held[key] = expiry
	return true, nil
}

func (l *LocalLock) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}
