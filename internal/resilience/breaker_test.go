package resilience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBreaker(threshold int, cooldown time.Duration) (*Breaker, *time.Time) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	b := NewBreaker(BreakerConfig{FailureThreshold: threshold, Cooldown: cooldown})
	b.nowFunc = func() time.Time { return now }
	return b, &now
}

func TestBreakerOpensAtThreshold(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)

	for i := 0; i < 2; i++ {
		b.Record(assert.AnError)
		assert.NoError(t, b.Allow())
	}
	b.Record(assert.AnError)

	assert.True(t, b.Open())
	assert.ErrorIs(t, b.Allow(), ErrBreakerOpen)
}

func TestBreakerSuccessResetsCount(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)

	b.Record(assert.AnError)
	b.Record(assert.AnError)
	b.Record(nil)
	b.Record(assert.AnError)
	b.Record(assert.AnError)

	assert.False(t, b.Open())
	assert.NoError(t, b.Allow())
}

func TestBreakerProbeAfterCooldown(t *testing.T) {
	b, now := newTestBreaker(1, time.Minute)

	b.Record(assert.AnError)
	require.True(t, b.Open())
	assert.ErrorIs(t, b.Allow(), ErrBreakerOpen)

	*now = now.Add(time.Minute)
	// Cooldown elapsed: probe allowed.
	assert.NoError(t, b.Allow())

	// Failed probe reopens for another full cooldown.
	b.Record(assert.AnError)
	assert.True(t, b.Open())
	*now = now.Add(30 * time.Second)
	assert.ErrorIs(t, b.Allow(), ErrBreakerOpen)

	// Successful probe closes the breaker.
	*now = now.Add(time.Minute)
	require.NoError(t, b.Allow())
	b.Record(nil)
	assert.False(t, b.Open())
}

func TestCollectorBreakersRegistry(t *testing.T) {
	cb := NewCollectorBreakers(BreakerConfig{FailureThreshold: 1, Cooldown: time.Minute})

	b1 := cb.Get("tasks")
	assert.Same(t, b1, cb.Get("tasks"))
	assert.NotSame(t, b1, cb.Get("projects"))

	b1.Record(assert.AnError)
	assert.Equal(t, []string{"tasks"}, cb.OpenCollectors())
}

func TestDefaultBreakerConfig(t *testing.T) {
	cfg := DefaultBreakerConfig()
	assert.Equal(t, 5, cfg.FailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.Cooldown)
}
