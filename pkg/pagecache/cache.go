package pagecache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Page is one fixed-size batch of results as returned by the upstream.
type Page[T any] struct {
	// Items are the page's results in upstream order.
	Items []T

	// TotalCount is the upstream's (possibly revised) total matching count.
	TotalCount int

	// HasMore reports whether further pages exist.
	HasMore bool
}

// Fetcher retrieves one upstream page. Page numbers are 1-based.
//
// A "nothing matches" upstream condition must surface as an empty page with
// a nil error, not as an error; any other non-success condition is an error
// and propagates verbatim out of Window.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, query, order string, page int) (Page[T], error)
}

// Gate delays the caller until the next upstream dispatch slot is free.
// *ratelimit.Pacer satisfies it.
type Gate interface {
	Wait(ctx context.Context) error
}

// Result is the answer to one window request.
type Result[T any] struct {
	// Items is the requested slice, clamped to what the upstream holds.
	Items []T

	// TotalCount is the latest upstream-reported total matching count.
	TotalCount int

	// HasMore reports whether results exist beyond offset+limit.
	HasMore bool
}

// Cache answers arbitrary (offset, limit) windows over a forward-only
// paginated upstream. One Cache is constructed per process; all of its
// upstream fetches funnel through the shared Gate.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[Key]*entry[T]

	fetcher  Fetcher[T]
	gate     Gate
	ttl      time.Duration
	pageSize int
	clock    func() time.Time
	logger   zerolog.Logger
}

// New creates a cache over the given fetcher and dispatch gate.
func New[T any](fetcher Fetcher[T], gate Gate, logger zerolog.Logger, opts ...Option) *Cache[T] {
	if fetcher == nil {
		panic("pagecache: fetcher cannot be nil")
	}
	if gate == nil {
		panic("pagecache: gate cannot be nil")
	}

	cfg := config{
		ttl:      DefaultTTL,
		pageSize: DefaultPageSize,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Cache[T]{
		entries:  make(map[Key]*entry[T]),
		fetcher:  fetcher,
		gate:     gate,
		ttl:      cfg.ttl,
		pageSize: cfg.pageSize,
		clock:    cfg.clock,
		logger:   logger,
	}
}

// Window returns items[offset : offset+limit] of the result set for
// (query, order), fetching only the upstream pages still missing from the
// buffer. Both bounds are clamped to what the upstream actually holds.
//
// On an upstream error the buffer keeps its partial state, so a retry
// resumes from the first unfetched page instead of starting over.
func (c *Cache[T]) Window(ctx context.Context, query, order string, offset, limit int) (Result[T], error) {
	if offset < 0 || limit < 0 {
		return Result[T]{}, fmt.Errorf("pagecache: invalid window offset=%d limit=%d", offset, limit)
	}

	key := Key{Query: query, Order: order}
	e := c.acquire(key)

	e.mu.Lock()
	defer e.mu.Unlock()

	windowRequests.Inc()

	needed := offset + limit
	fetched := 0
	for !e.exhausted && len(e.items) < needed {
		// Deriving the page number from the buffer length keeps fetches
		// strictly sequential and makes re-fetching a covered page
		// impossible.
		page := len(e.items)/c.pageSize + 1

		if err := c.gate.Wait(ctx); err != nil {
			return Result[T]{}, err
		}

		p, err := c.fetcher.FetchPage(ctx, query, order, page)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Str("key", key.String()).
				Int("page", page).
				Int("buffered", len(e.items)).
				Msg("Upstream page fetch failed")
			return Result[T]{}, err
		}
		pagesFetched.Inc()
		fetched++

		if len(p.Items) == 0 {
			// The upstream can report "nothing matches" before it ever
			// reports has_more=false.
			e.exhausted = true
			break
		}

		e.items = append(e.items, p.Items...)
		e.totalCount = p.TotalCount
		if !p.HasMore {
			e.exhausted = true
		}
	}

	if fetched == 0 {
		windowHits.Inc()
	} else {
		c.logger.Debug().
			Str("key", key.String()).
			Int("pages", fetched).
			Int("buffered", len(e.items)).
			Int("total", e.totalCount).
			Bool("exhausted", e.exhausted).
			Msg("Buffer grown")
	}

	return Result[T]{
		Items:      sliceWindow(e.items, offset, limit),
		TotalCount: e.totalCount,
		HasMore:    offset+limit < e.totalCount,
	}, nil
}

// Len reports how many items are currently buffered for (query, order).
// It returns 0 for absent or expired buffers without creating one.
func (c *Cache[T]) Len(query, order string) int {
	c.mu.Lock()
	e, ok := c.entries[Key{Query: query, Order: order}]
	if ok && e.stale(c.clock(), c.ttl) {
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return 0
	}

	// The entry mutex covers the grow loop's appends; the cache mutex alone
	// does not.
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.items)
}

// acquire returns the live entry for key, discarding and replacing it first
// if its age exceeds the TTL. Expiry is only ever checked here, on access.
func (c *Cache[T]) acquire(key Key) *entry[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	e, ok := c.entries[key]
	if ok && e.stale(now, c.ttl) {
		// A grow loop still holding the old entry keeps appending to it,
		// but nobody can reach it through the map anymore.
		delete(c.entries, key)
		evictions.Inc()
		c.logger.Debug().
			Str("key", key.String()).
			Time("created_at", e.createdAt).
			Msg("Discarding stale buffer")
		ok = false
	}
	if !ok {
		e = &entry[T]{createdAt: now}
		c.entries[key] = e
		entriesLive.Set(float64(len(c.entries)))
	}
	return e
}

func sliceWindow[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
