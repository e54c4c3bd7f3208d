package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ratelimit:snipe:123", key("snipe", "123"))
}

// TestLimiter needs a running Redis server, set REDIS_URL to run it.
func TestLimiter(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	l, err := New(url, zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	now := time.UnixMilli(time.Now().UnixMilli())
	l.now = func() time.Time { return now }

	ctx := context.Background()
	command := "test-" + uuid.NewString()

	assert.False(t, l.IsRateLimited(ctx, command, "1", time.Minute))

	l.Record(ctx, command, "1")
	assert.True(t, l.IsRateLimited(ctx, command, "1", time.Minute))
	assert.False(t, l.IsRateLimited(ctx, command, "2", time.Minute))

	now = now.Add(30 * time.Second)
	assert.Equal(t, 30*time.Second, l.Remaining(ctx, command, "1", time.Minute))

	now = now.Add(time.Minute)
	assert.False(t, l.IsRateLimited(ctx, command, "1", time.Minute))
}
