package pagecache

import (
	"sync"
	"time"
)

// entry is the growable ordered buffer for one (query, order) pair.
type entry[T any] struct {
	// mu serializes the grow loop per key: a second concurrent window
	// request for the same key waits for the in-progress fetch instead of
	// duplicating it.
	mu sync.Mutex

	// items is append-only for the lifetime of the entry, insertion order =
	// upstream page order. Never truncated or reordered in place.
	items []T

	// totalCount is the latest upstream-reported total. The upstream may
	// revise it between pages; the last value wins.
	totalCount int

	// exhausted is terminal: once set, no further upstream fetch happens
	// for this entry.
	exhausted bool

	// createdAt is fixed at creation and never refreshed by growth; it
	// defines the TTL window.
	createdAt time.Time
}

// stale reports whether the entry's age exceeds ttl at time now.
func (e *entry[T]) stale(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.createdAt) > ttl
}
