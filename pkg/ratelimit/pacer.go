// Package ratelimit serializes all outbound upstream calls onto a single
// dispatch timeline with a configurable minimum interval between them.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for dispatch pacing.
var (
	dispatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cardsearch_upstream_dispatches_total",
		Help: "Total upstream dispatches released by the pacer",
	})

	paceWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cardsearch_pace_wait_seconds",
		Help:    "Time spent waiting for the minimum dispatch interval",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
	})
)

// DefaultMinInterval is the spacing the upstream asks clients to keep
// between consecutive requests.
const DefaultMinInterval = 100 * time.Millisecond

// Pacer gates outbound calls so that no two dispatches start closer
// together than the configured interval, process-wide. Concurrent callers
// queue on the internal mutex; only the spacing is guaranteed, not strict
// fairness.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	// clock and sleep are swappable for deterministic tests.
	clock  func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
	logger zerolog.Logger
}

// NewPacer creates a pacer with the given minimum dispatch interval.
// A non-positive interval falls back to DefaultMinInterval.
func NewPacer(interval time.Duration, logger zerolog.Logger) *Pacer {
	if interval <= 0 {
		interval = DefaultMinInterval
	}
	return &Pacer{
		interval: interval,
		clock:    time.Now,
		sleep:    sleepContext,
		logger:   logger,
	}
}

// Wait blocks until at least the configured interval has elapsed since the
// previous dispatch anywhere in the process, then records the new dispatch
// point. The dispatch point is recorded after the delay, not before.
//
// Wait cannot fail on its own; it returns an error only if ctx is cancelled
// while waiting. An abandoned wait does not advance the dispatch timeline.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() {
		if wait := p.interval - p.clock().Sub(p.last); wait > 0 {
			paceWaitSeconds.Observe(wait.Seconds())
			p.logger.Debug().
				Dur("wait", wait).
				Msg("Pacing upstream dispatch")
			if err := p.sleep(ctx, wait); err != nil {
				return err
			}
		}
	}

	p.last = p.clock()
	dispatchesTotal.Inc()
	return nil
}

// Interval returns the configured minimum dispatch interval.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
