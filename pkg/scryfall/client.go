// Package scryfall is the upstream transport: a thin client for a
// Scryfall-style card search API with paced dispatches, typed errors and
// request metrics.
package scryfall

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/mtgbrew/cardsearch/pkg/ratelimit"
)

// Prometheus metrics for upstream requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cardsearch_upstream_requests_total",
		Help: "Upstream requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cardsearch_upstream_request_duration_seconds",
		Help:    "Upstream request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"endpoint"})
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.scryfall.com"

// Config holds the transport configuration.
type Config struct {
	// BaseURL of the upstream API (DefaultBaseURL when empty).
	BaseURL string

	// UserAgent identifies this client to the upstream (required).
	UserAgent string

	// Pacer spaces this client's own dispatches (collection, images).
	// Required: the upstream asks for a minimum interval between ALL calls.
	Pacer *ratelimit.Pacer

	// Timeout for a single round-trip (30s when zero).
	Timeout time.Duration
}

// Client talks to the upstream card API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	pacer      *ratelimit.Pacer
	logger     zerolog.Logger
}

// New creates an upstream client.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}
	if cfg.Pacer == nil {
		return nil, fmt.Errorf("pacer is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		pacer:      cfg.Pacer,
		logger:     logger.With().Str("component", "scryfall").Logger(),
	}, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// do executes one request with the standard headers and records metrics.
// The endpoint label is the logical path, not the concrete URL.
func (c *Client) do(ctx context.Context, method, url, endpoint string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("Upstream request failed")
		return nil, fmt.Errorf("upstream request: %w", err)
	}

	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}
