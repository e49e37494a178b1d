package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
)

// LocalLocker is an in-process keyed lock for single-replica deployments.
type LocalLocker struct {
	wait time.Duration

	mu    sync.Mutex
	slots map[string]*keySlot
}

type keySlot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{wait: wait, slots: make(map[string]*keySlot)}
}

var _ portssvc.Locker = (*LocalLocker)(nil)

func (l *LocalLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	slot := l.ref(key)
	defer l.unref(key, slot)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case slot.ch <- struct{}{}:
	case <-timer.C:
		return fmt.Errorf("%w: %s", portssvc.ErrLockTimeout, key)
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-slot.ch }()

	return fn(ctx)
}

func (l *LocalLocker) ref(key string) *keySlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[key]
	if !ok {
		slot = &keySlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++
	return slot
}

func (l *LocalLocker) unref(key string, slot *keySlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}
