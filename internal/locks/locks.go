// Package locks serializes structural operations per presentation. Work on
// different keys proceeds in parallel.
package locks

import (
	"context"
	"errors"
	"time"
)

// ErrLockTimeout is returned when a lock is not acquired before the context ends.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// Locker grants exclusive access to a key. The returned function releases
// the lock and is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type bounded struct {
	Locker
	wait time.Duration
}

// WithWait bounds how long Lock waits for a contended key. A wait of zero
// leaves l unchanged.
func WithWait(l Locker, wait time.Duration) Locker {
	if wait <= 0 {
		return l
	}
	return &bounded{Locker: l, wait: wait}
}

func (b *bounded) Lock(ctx context.Context, key string) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, b.wait)
	defer cancel()
	return b.Locker.Lock(ctx, key)
}
