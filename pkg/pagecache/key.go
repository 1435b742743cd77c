package pagecache

import (
	"fmt"
	"strings"
)

// Key addresses one cached result buffer. Different order keys for the same
// query are distinct buffers: a re-sorted result set is not assumed to be a
// reorder of data the cache already holds.
type Key struct {
	// Query is the upstream-accepted filter string.
	Query string

	// Order is the upstream sort key (e.g. "name", "released", "cmc").
	Order string
}

// String generates a deterministic string form for logging and metrics.
//
// Example:
//
//	search:o=name:q=t:goblin cmc<3
func (k Key) String() string {
	order := strings.TrimSpace(k.Order)
	if order == "" {
		order = "default"
	}
	return fmt.Sprintf("search:o=%s:q=%s", order, k.Query)
}
