package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/wearloop/rental-system/internal/api/metrics"
	"github.com/wearloop/rental-system/internal/core/domain"
)

// itemLocks hands out one exclusion token per item id. A token serialises
// rent/return transitions for a single item; operations on different items
// never contend. Entries are reference-counted and removed once the last
// waiter is gone, so the registry does not grow with the catalog.
type itemLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	sem  *semaphore.Weighted
	refs int
}

func newItemLocks() *itemLocks {
	return &itemLocks{entries: make(map[string]*lockEntry)}
}

// acquire blocks until the token for itemID is held, the timeout elapses, or
// ctx is cancelled. On timeout it returns domain.ErrBusy. The returned release
// function must be called exactly once.
func (l *itemLocks) acquire(ctx context.Context, itemID string, timeout time.Duration) (release func(), err error) {
	l.mu.Lock()
	e, ok := l.entries[itemID]
	if !ok {
		e = &lockEntry{sem: semaphore.NewWeighted(1)}
		l.entries[itemID] = e
	}
	e.refs++
	l.mu.Unlock()

	acquireCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	if err := e.sem.Acquire(acquireCtx, 1); err != nil {
		l.unref(itemID, e)
		metrics.LockTimeoutsTotal.Inc()
		return nil, domain.ErrBusy
	}
	metrics.LockWaitDuration.Observe(time.Since(start).Seconds())

	var once sync.Once
	return func() {
		once.Do(func() {
			e.sem.Release(1)
			l.unref(itemID, e)
		})
	}, nil
}

func (l *itemLocks) unref(itemID string, e *lockEntry) {
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, itemID)
	}
	l.mu.Unlock()
}
