package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now    time.Time
	slept  []time.Duration
	sleepE error
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return c.sleepE
}

func newTestGate(interval time.Duration, clock *fakeClock) *Gate {
	g := NewGate(interval)
	g.now = clock.Now
	g.sleep = clock.Sleep
	return g
}

func TestGate_FirstCallPassesImmediately(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	g := newTestGate(time.Second, clock)

	require.NoError(t, g.Wait(context.Background()))
	assert.Empty(t, clock.slept)
}

func TestGate_SpacesConsecutiveCalls(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	g := newTestGate(time.Second, clock)
	ctx := context.Background()

	require.NoError(t, g.Wait(ctx))
	clock.now = clock.now.Add(300 * time.Millisecond)
	require.NoError(t, g.Wait(ctx))
	require.Len(t, clock.slept, 1)
	assert.Equal(t, 700*time.Millisecond, clock.slept[0])

	// A call well after the interval does not sleep.
	clock.now = clock.now.Add(5 * time.Second)
	require.NoError(t, g.Wait(ctx))
	assert.Len(t, clock.slept, 1)
}

func TestGate_ZeroIntervalNeverWaits(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	g := newTestGate(0, clock)
	for i := 0; i < 3; i++ {
		require.NoError(t, g.Wait(context.Background()))
	}
	assert.Empty(t, clock.slept)
}

func TestGate_NilGate(t *testing.T) {
	var g *Gate
	assert.NoError(t, g.Wait(context.Background()))
}

func TestGate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGate(time.Hour)
	assert.NoError(t, g.Wait(context.Background()))
	assert.ErrorIs(t, g.Wait(ctx), context.Canceled)
}

func TestSleepWithContext(t *testing.T) {
	assert.NoError(t, SleepWithContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SleepWithContext(ctx, time.Hour), context.Canceled)
}
