// Package ownedset holds the mutable owned-expert selection of an
// interactive session.
package ownedset

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/expertcalc/internal/domain/model"
)

// Tracker records which expert ids are currently owned.
type Tracker interface {
	// Toggle flips membership of id and reports whether it is now owned.
	Toggle(ctx context.Context, id string) bool

	// Add marks id as owned. Returns false if it already was, or if the
	// tracker is bounded and full.
	Add(ctx context.Context, id string) bool

	// Remove drops id. Returns false if it was not owned.
	Remove(ctx context.Context, id string) bool

	Has(ctx context.Context, id string) bool

	// Reset replaces the whole selection with initial.
	Reset(ctx context.Context, initial model.OwnedSet)

	// Snapshot returns an immutable copy of the current selection.
	Snapshot(ctx context.Context) model.OwnedSet

	Size() int64
}

// inMemoryTracker implements Tracker with a mutex-guarded map.
// maxSize <= 0 means unbounded.
type inMemoryTracker struct {
	mu      sync.RWMutex
	owned   map[string]struct{}
	maxSize int
	size    atomic.Int64
}

// NewInMemoryTracker creates an empty tracker with configuration options.
func NewInMemoryTracker(opts ...Option) Tracker {
	t := &inMemoryTracker{}

	for _, opt := range opts {
		opt(t)
	}

	if t.owned == nil {
		t.owned = make(map[string]struct{})
	}
	t.size.Store(int64(len(t.owned)))

	return t
}

func (t *inMemoryTracker) Toggle(ctx context.Context, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.owned[id]; ok {
		t.removeLocked(id)
		return false
	}
	return t.addLocked(id)
}

func (t *inMemoryTracker) Add(ctx context.Context, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.owned[id]; ok {
		return false
	}
	return t.addLocked(id)
}

func (t *inMemoryTracker) Remove(ctx context.Context, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.owned[id]; !ok {
		return false
	}
	t.removeLocked(id)
	return true
}

func (t *inMemoryTracker) Has(ctx context.Context, id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.owned[id]
	return ok
}

func (t *inMemoryTracker) Reset(ctx context.Context, initial model.OwnedSet) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.owned = make(map[string]struct{}, initial.Len())
	initial.Each(func(id string) {
		if t.maxSize > 0 && len(t.owned) >= t.maxSize {
			return
		}
		t.owned[id] = struct{}{}
	})
	t.size.Store(int64(len(t.owned)))
}

func (t *inMemoryTracker) Snapshot(ctx context.Context) model.OwnedSet {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]string, 0, len(t.owned))
	for id := range t.owned {
		ids = append(ids, id)
	}
	return model.NewOwnedSet(ids...)
}

// Size returns the number of owned ids.
func (t *inMemoryTracker) Size() int64 {
	return t.size.Load()
}

// addLocked must be called with t.mu held.
func (t *inMemoryTracker) addLocked(id string) bool {
	if t.maxSize > 0 && len(t.owned) >= t.maxSize {
		return false
	}
	t.owned[id] = struct{}{}
	t.size.Add(1)
	return true
}

// removeLocked must be called with t.mu held.
func (t *inMemoryTracker) removeLocked(id string) {
	delete(t.owned, id)
	t.size.Add(-1)
}
