package pagecache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// windowRequests counts all window requests answered by the cache.
	windowRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardsearch_window_requests_total",
			Help: "Total window requests answered by the pagination cache",
		},
	)

	// windowHits counts window requests served without any upstream fetch.
	windowHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardsearch_window_cache_hits_total",
			Help: "Window requests served entirely from buffered pages",
		},
	)

	// pagesFetched counts upstream pages appended to buffers.
	pagesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardsearch_pages_fetched_total",
			Help: "Total upstream pages fetched by the pagination cache",
		},
	)

	// evictions counts buffers discarded on access because their TTL passed.
	evictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardsearch_buffer_evictions_total",
			Help: "Result buffers discarded after exceeding their TTL",
		},
	)

	// entriesLive tracks the number of live result buffers.
	entriesLive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cardsearch_buffers_live",
			Help: "Result buffers currently held by the pagination cache",
		},
	)
)
