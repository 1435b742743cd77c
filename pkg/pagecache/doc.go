// Package pagecache reconciles arbitrary (offset, limit) result windows
// with a fixed-size, forward-only paginated upstream.
//
// The cache keeps one growable, ordered result buffer per (query, order)
// pair. A window request grows the buffer just far enough to cover the
// requested range, fetching upstream pages strictly in order through the
// shared dispatch pacer, then slices the buffer. Already-covered ranges are
// served without any upstream call.
//
// # Basic Usage
//
//	pacer := ratelimit.NewPacer(ratelimit.DefaultMinInterval, logger)
//	cache := pagecache.New[scryfall.Card](client, pacer, logger,
//		pagecache.WithTTL(5*time.Minute),
//		pagecache.WithPageSize(175),
//	)
//
//	res, err := cache.Window(ctx, "t:goblin", "name", 20, 10)
//	// res.Items is items[20:30], res.TotalCount and res.HasMore describe
//	// the full result set.
//
// # Invariants
//
//   - A buffer only grows for its lifetime; it is never truncated or
//     reordered in place.
//   - Pages are fetched in increasing page-number order; a page whose items
//     are already buffered is never re-fetched.
//   - Once the upstream signals exhaustion (empty page or has_more=false),
//     no further fetch is attempted for that buffer.
//   - Buffers older than the TTL are discarded lazily on access; the next
//     request starts over from page 1.
//
// Concurrent requests against the same key are serialized by a per-buffer
// mutex: the second caller waits for the first grow loop to finish and then
// usually finds the buffer already long enough.
package pagecache
