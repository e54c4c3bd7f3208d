package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestMemoryCooldown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := &clock{t: time.Unix(1000, 0)}
	m := NewMemory(c.Now)

	assert.False(t, m.IsRateLimited(ctx, "snipe", "1", 0), "never invoked")
	assert.Zero(t, m.Remaining(ctx, "snipe", "1", 0))

	m.Record(ctx, "snipe", "1")
	assert.True(t, m.IsRateLimited(ctx, "snipe", "1", 0))
	assert.Equal(t, DefaultCooldown, m.Remaining(ctx, "snipe", "1", 0))

	c.Advance(time.Second)
	assert.EqualValues(t, 2000, RemainingMs(ctx, m, "snipe", "1", 0))

	c.Advance(2 * time.Second)
	assert.False(t, m.IsRateLimited(ctx, "snipe", "1", 0), "limited only while now < last + cooldown")
	assert.Zero(t, m.Remaining(ctx, "snipe", "1", 0))
}

func TestMemoryCustomCooldown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := &clock{t: time.Unix(1000, 0)}
	m := NewMemory(c.Now)

	m.Record(ctx, "define", "1")
	c.Advance(5 * time.Second)
	assert.True(t, m.IsRateLimited(ctx, "define", "1", 10*time.Second))
	assert.Equal(t, 5*time.Second, m.Remaining(ctx, "define", "1", 10*time.Second))
	assert.False(t, m.IsRateLimited(ctx, "define", "1", -time.Second), "non-positive cooldowns use the default")
}

func TestMemoryIndependentKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory(nil)

	m.Record(ctx, "snipe", "1")
	assert.True(t, m.IsRateLimited(ctx, "snipe", "1", time.Minute))
	assert.False(t, m.IsRateLimited(ctx, "snipe", "2", time.Minute))
	assert.False(t, m.IsRateLimited(ctx, "uptime", "1", time.Minute))
}

func TestMemoryPrune(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := &clock{t: time.Unix(1000, 0)}
	m := NewMemory(c.Now)

	m.Record(ctx, "a", "1")
	c.Advance(time.Hour)
	m.Record(ctx, "b", "1")

	assert.Equal(t, 1, m.Prune(30*time.Minute))
	assert.Equal(t, 1, m.Len())
}

func TestCooldown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultCooldown, Cooldown(0))
	assert.Equal(t, time.Minute, Cooldown(time.Minute))
}
