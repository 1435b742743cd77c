package pagecache

import "time"

// Defaults for the cache tunables.
const (
	// DefaultTTL is how long a result buffer stays valid after creation.
	DefaultTTL = 5 * time.Minute

	// DefaultPageSize is the upstream's fixed page size.
	DefaultPageSize = 175
)

type config struct {
	ttl      time.Duration
	pageSize int
	clock    func() time.Time
}

// Option configures a Cache.
type Option func(*config)

// WithTTL sets the buffer lifetime. Expiry is checked lazily on access.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithPageSize sets the upstream page size used to derive the next page
// number from the buffer length. Must match the upstream's actual fixed
// page size.
func WithPageSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithClock injects the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}
