package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitEnforcesSpacing(t *testing.T) {
	l := New(map[string]time.Duration{"hunter": 50 * time.Millisecond})
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, l.Wait(ctx, "hunter"))
	require.NoError(t, l.Wait(ctx, "hunter"))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
}

func TestWaitDistinctSourcesIndependent(t *testing.T) {
	l := New(map[string]time.Duration{
		"hunter": 200 * time.Millisecond,
		"apollo": 200 * time.Millisecond,
	})
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, l.Wait(ctx, "hunter"))
	require.NoError(t, l.Wait(ctx, "apollo"))
	elapsed := time.Since(start)

	// First call on each source should not wait on the other's interval.
	assert.Less(t, elapsed, 150*time.Millisecond)
}

func TestWaitDefaultInterval(t *testing.T) {
	l := New(nil)
	assert.Equal(t, DefaultInterval, l.Interval("unknown"))
}

func TestWaitCancelled(t *testing.T) {
	l := New(map[string]time.Duration{"slow": time.Hour})
	ctx := context.Background()
	require.NoError(t, l.Wait(ctx, "slow"))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err := l.Wait(cancelled, "slow")
	assert.Error(t, err)
}
