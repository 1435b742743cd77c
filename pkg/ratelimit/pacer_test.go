package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeTimeline drives a Pacer with a synthetic clock whose sleeps advance
// the clock instead of blocking.
type fakeTimeline struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeTimeline() *fakeTimeline {
	return &fakeTimeline{now: time.Unix(1700000000, 0)}
}

func (f *fakeTimeline) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeTimeline) sleep(_ context.Context, d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
	f.sleeps = append(f.sleeps, d)
	return nil
}

func (f *fakeTimeline) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestPacer(interval time.Duration, tl *fakeTimeline) *Pacer {
	p := NewPacer(interval, zerolog.Nop())
	p.clock = tl.clock
	p.sleep = tl.sleep
	return p
}

func TestPacer_FirstDispatchImmediate(t *testing.T) {
	tl := newFakeTimeline()
	p := newTestPacer(100*time.Millisecond, tl)

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if len(tl.sleeps) != 0 {
		t.Errorf("first dispatch slept %v, want no sleep", tl.sleeps)
	}
}

func TestPacer_Spacing(t *testing.T) {
	tests := []struct {
		name      string
		elapsed   time.Duration
		wantSleep time.Duration
	}{
		{
			name:      "back to back",
			elapsed:   0,
			wantSleep: 100 * time.Millisecond,
		},
		{
			name:      "partially elapsed",
			elapsed:   60 * time.Millisecond,
			wantSleep: 40 * time.Millisecond,
		},
		{
			name:      "interval already elapsed",
			elapsed:   150 * time.Millisecond,
			wantSleep: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := newFakeTimeline()
			p := newTestPacer(100*time.Millisecond, tl)

			if err := p.Wait(context.Background()); err != nil {
				t.Fatalf("first Wait() error = %v", err)
			}
			tl.advance(tt.elapsed)
			if err := p.Wait(context.Background()); err != nil {
				t.Fatalf("second Wait() error = %v", err)
			}

			var slept time.Duration
			for _, d := range tl.sleeps {
				slept += d
			}
			if slept != tt.wantSleep {
				t.Errorf("slept %v, want %v", slept, tt.wantSleep)
			}
		})
	}
}

func TestPacer_ConcurrentCallersKeepSpacing(t *testing.T) {
	const (
		interval = 100 * time.Millisecond
		callers  = 8
	)

	tl := newFakeTimeline()
	p := newTestPacer(interval, tl)
	start := tl.clock()

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.Wait(context.Background()); err != nil {
				t.Errorf("Wait() error = %v", err)
			}
		}()
	}
	wg.Wait()

	// The fake clock only advances through pacer sleeps, so every caller
	// after the first must have slept a full interval: the N dispatch
	// points span exactly (N-1) intervals.
	if got, want := tl.clock().Sub(start), (callers-1)*interval; got != want {
		t.Errorf("dispatch timeline spans %v, want %v", got, want)
	}
	tl.mu.Lock()
	defer tl.mu.Unlock()
	if len(tl.sleeps) != callers-1 {
		t.Errorf("got %d sleeps, want %d", len(tl.sleeps), callers-1)
	}
	for i, d := range tl.sleeps {
		if d != interval {
			t.Errorf("sleep %d = %v, want %v", i, d, interval)
		}
	}
}

func TestPacer_ContextCancelledWhileWaiting(t *testing.T) {
	p := NewPacer(time.Hour, zerolog.Nop())

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Wait(ctx); err != context.Canceled {
		t.Errorf("Wait() with cancelled context = %v, want %v", err, context.Canceled)
	}
}

func TestPacer_RealClockSpacing(t *testing.T) {
	const (
		interval   = 5 * time.Millisecond
		dispatches = 4
	)

	p := NewPacer(interval, zerolog.Nop())

	start := time.Now()
	for i := 0; i < dispatches; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}

	if elapsed := time.Since(start); elapsed < (dispatches-1)*interval {
		t.Errorf("%d dispatches took %v, want >= %v", dispatches, elapsed, (dispatches-1)*interval)
	}
}

func TestPacer_DefaultInterval(t *testing.T) {
	p := NewPacer(0, zerolog.Nop())
	if p.Interval() != DefaultMinInterval {
		t.Errorf("Interval() = %v, want %v", p.Interval(), DefaultMinInterval)
	}
}
