// Package ratelimit enforces minimum inter-call spacing per named source.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval applies to sources without a configured interval.
const DefaultInterval = 500 * time.Millisecond

// Limiter paces outbound calls per source. One Limiter is shared by all
// concurrent resolutions for the lifetime of the run, so pacing holds across
// contacts, not per contact.
type Limiter struct {
	mu        sync.Mutex
	intervals map[string]time.Duration
	limiters  map[string]*rate.Limiter
}

// New creates a Limiter with per-source intervals. Sources absent from the
// map fall back to DefaultInterval.
func New(intervals map[string]time.Duration) *Limiter {
	return &Limiter{
		intervals: intervals,
		limiters:  make(map[string]*rate.Limiter),
	}
}

// Wait blocks until at least the source's interval has elapsed since the
// previous call to the same source, then records the new call. Returns early
// with the context's error on cancellation.
func (l *Limiter) Wait(ctx context.Context, source string) error {
	return l.limiter(source).Wait(ctx)
}

// Interval reports the configured spacing for a source.
func (l *Limiter) Interval(source string) time.Duration {
	if iv, ok := l.intervals[source]; ok && iv > 0 {
		return iv
	}
	return DefaultInterval
}

func (l *Limiter) limiter(source string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[source]
	if !ok {
		// Burst 1 makes rate.Every behave as a strict minimum spacing.
		lim = rate.NewLimiter(rate.Every(l.Interval(source)), 1)
		l.limiters[source] = lim
	}
	return lim
}
