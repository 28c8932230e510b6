package ownedset

// Option applies a configuration option to the in-memory tracker.
type Option func(*inMemoryTracker)

// WithMaxSize caps the number of owned ids.
// If maxSize <= 0 the tracker is unbounded.
func WithMaxSize(maxSize int) Option {
	return func(t *inMemoryTracker) {
		t.maxSize = maxSize
	}
}

// WithInitial seeds the tracker with ids.
func WithInitial(ids ...string) Option {
	return func(t *inMemoryTracker) {
		if t.owned == nil {
			t.owned = make(map[string]struct{}, len(ids))
		}
		for _, id := range ids {
			t.owned[id] = struct{}{}
		}
	}
}
