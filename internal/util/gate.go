package util

import (
	"context"
	"sync"
	"time"
)

// Gate enforces a minimum interval between successive calls to Wait. It is a
// cooperative throttle for remote APIs with informal rate limits: the first
// call passes immediately and later calls sleep for whatever remains of the
// interval since the previous one.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewGate creates a gate with the given minimum interval. A zero or negative
// interval never waits.
func NewGate(interval time.Duration) *Gate {
	return &Gate{
		interval: interval,
		now:      time.Now,
		sleep:    SleepWithContext,
	}
}

// Interval returns the configured minimum interval.
func (g *Gate) Interval() time.Duration {
	return g.interval
}

// Wait blocks until the interval since the previous call has elapsed or ctx
// is done. The slot is claimed before sleeping, so concurrent callers are
// spaced out rather than released together.
func (g *Gate) Wait(ctx context.Context) error {
	if g == nil || g.interval <= 0 {
		return ctx.Err()
	}

	g.mu.Lock()
	now := g.now()
	next := now
	if !g.last.IsZero() {
		if earliest := g.last.Add(g.interval); earliest.After(now) {
			next = earliest
		}
	}
	g.last = next
	g.mu.Unlock()

	if wait := next.Sub(now); wait > 0 {
		return g.sleep(ctx, wait)
	}
	return ctx.Err()
}

// SleepWithContext sleeps for d or until ctx is done, whichever comes first.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
