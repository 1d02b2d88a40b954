package service

import (
	"context"
	"sync"
)

// keyedLock serializes work per conference id. Entries are dropped once unused.
type keyedLock struct {
	mu    sync.Mutex
	locks map[int64]*lockEntry
}

// lockEntry is held while its one-slot channel is full.
type lockEntry struct {
	ch   chan struct{}
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{locks: make(map[int64]*lockEntry)}
}

// LockContext blocks until id is free or ctx is done. On success it returns the
// matching unlock func; otherwise ctx's error.
func (k *keyedLock) LockContext(ctx context.Context, id int64) (func(), error) {
	k.mu.Lock()
	e, ok := k.locks[id]
	if !ok {
		e = &lockEntry{ch: make(chan struct{}, 1)}
		k.locks[id] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(id, e)
		return nil, ctx.Err()
	}
	return func() {
		<-e.ch
		k.release(id, e)
	}, nil
}

func (k *keyedLock) release(id int64, e *lockEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.locks, id)
	}
}
