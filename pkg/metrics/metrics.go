// Package metrics provides the Prometheus registry and exposition handler
// for the cardsearch client. The metrics themselves are defined in their
// owning packages (pagecache, ratelimit, scryfall) to keep them next to the
// code they measure.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the registerer all package metrics attach to via promauto.
var Registry = prometheus.DefaultRegisterer

// Handler returns the HTTP handler exposing every registered metric.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Reference
//
// Pacing (pkg/ratelimit):
//   - cardsearch_upstream_dispatches_total (Counter): dispatches released by the pacer
//   - cardsearch_pace_wait_seconds (Histogram): delay imposed before a dispatch
//
// Pagination cache (pkg/pagecache):
//   - cardsearch_window_requests_total (Counter): window requests answered
//   - cardsearch_window_cache_hits_total (Counter): windows served without fetching
//   - cardsearch_pages_fetched_total (Counter): upstream pages appended to buffers
//   - cardsearch_buffer_evictions_total (Counter): buffers discarded after TTL
//   - cardsearch_buffers_live (Gauge): live result buffers
//
// Upstream transport (pkg/scryfall):
//   - cardsearch_upstream_requests_total{endpoint, status} (Counter)
//   - cardsearch_upstream_request_duration_seconds{endpoint} (Histogram)
//
// Example queries:
//
//	# Window cache hit rate
//	rate(cardsearch_window_cache_hits_total[5m]) /
//	rate(cardsearch_window_requests_total[5m])
//
//	# Upstream pressure
//	rate(cardsearch_pages_fetched_total[5m])
//
//	# P95 upstream latency
//	histogram_quantile(0.95, rate(cardsearch_upstream_request_duration_seconds_bucket[5m]))
