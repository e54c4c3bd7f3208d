package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"emperror.dev/errors"
	"github.com/google/uuid"
	"github.com/jamesatjaminit/Jam-Bot/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	ts := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	in := bson.M{
		"prefix": "!",
		"twitchNotifications": bson.M{
			"liveTime": "2023-01-01T00:00:00Z",
		},
		"ordered": bson.D{{Key: "a", Value: int32(1)}},
		"list":    bson.A{"x", bson.M{"y": true}},
		"date":    primitive.NewDateTimeFromTime(ts),
	}

	assert.Equal(t, settings.Document{
		"prefix": "!",
		"twitchNotifications": map[string]any{
			"liveTime": "2023-01-01T00:00:00Z",
		},
		"ordered": map[string]any{"a": int32(1)},
		"list":    []any{"x", map[string]any{"y": true}},
		"date":    ts,
	}, Normalize(in))
}

// TestBackend needs a running MongoDB server, set MONGODB_URI to run it.
func TestBackend(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	b, err := New(ctx, uri, "jambot_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close(context.Background()) })

	guildID := uuid.NewString()

	_, err = b.FindOne(ctx, guildID)
	assert.True(t, errors.Is(err, settings.ErrNotFound))

	require.NoError(t, b.ReplaceOne(ctx, guildID, settings.Document{"prefix": "!"}))
	require.NoError(t, b.ReplaceOne(ctx, guildID, settings.Document{"prefix": "?", "logJoinLeaves": true}))

	doc, err := b.FindOne(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, settings.Document{"prefix": "?", "logJoinLeaves": true}, doc)

	n, err := b.coll.CountDocuments(ctx, bson.M{"guildId": guildID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
