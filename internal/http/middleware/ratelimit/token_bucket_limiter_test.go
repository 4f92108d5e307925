package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestTokenBucketLimiter_BurstThenRefill(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1000, 0)}
	l := NewTokenBucketLimiter(clock, Config{Rate: 1, Burst: 2})

	require.True(t, l.Allow("d1"))
	require.True(t, l.Allow("d1"))
	require.False(t, l.Allow("d1"))

	clock.advance(time.Second)
	require.True(t, l.Allow("d1"))
	require.False(t, l.Allow("d1"))
}

func TestTokenBucketLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1000, 0)}
	l := NewTokenBucketLimiter(clock, Config{Rate: 1, Burst: 1})

	require.True(t, l.Allow("d1"))
	require.False(t, l.Allow("d1"))
	require.True(t, l.Allow("d2"))
}

func TestTokenBucketLimiter_MaxBuckets(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1000, 0)}
	l := NewTokenBucketLimiter(clock, Config{Rate: 1, Burst: 1, MaxBuckets: 2})

	require.True(t, l.Allow("d1"))
	require.True(t, l.Allow("d2"))
	// No room for a third bucket: reject rather than grow unbounded.
	require.False(t, l.Allow("d3"))
}

func TestTokenBucketLimiter_CleanupEvictsIdleBuckets(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1000, 0)}
	l := NewTokenBucketLimiter(clock, Config{Rate: 1, Burst: 1, TTL: time.Minute, MaxBuckets: 1})

	require.True(t, l.Allow("d1"))
	// d1 idles past the TTL; its bucket frees the slot for d2.
	clock.advance(3 * time.Minute)
	require.True(t, l.Allow("d2"))
}
