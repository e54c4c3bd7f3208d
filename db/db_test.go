package db

import (
	"context"
	"os"
	"testing"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/google/uuid"
	"github.com/jamesatjaminit/Jam-Bot/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testDB connects to the database in DATABASE_URL, or skips the test.
func testDB(t *testing.T) *DB {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := New(context.Background(), url, zap.NewNop().Sugar(), false)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestSettingsBackend(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	guildID := uuid.NewString()

	_, err := db.FindOne(ctx, guildID)
	assert.True(t, errors.Is(err, settings.ErrNotFound))

	doc := settings.Document{
		settings.KeyPrefix: "!",
		settings.NamespaceTwitch: map[string]any{
			settings.KeyLiveTime: "2023-01-01T00:00:00Z",
		},
	}
	require.NoError(t, db.ReplaceOne(ctx, guildID, doc))

	got, err := db.FindOne(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	doc[settings.KeyPrefix] = "?"
	require.NoError(t, db.ReplaceOne(ctx, guildID, doc))

	got, err = db.FindOne(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, "?", got[settings.KeyPrefix])
}

func TestTasks(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	guildID := discord.GuildID(time.Now().UnixNano())
	now := time.Now().UTC().Truncate(time.Second)

	due, err := db.AddTask(ctx, Task{GuildID: guildID, UserID: 1, Type: TaskUnban, RunAt: now.Add(-time.Minute)})
	require.NoError(t, err)
	assert.NotZero(t, due.ID)

	later, err := db.AddTask(ctx, Task{GuildID: guildID, UserID: 2, Type: TaskUnban, RunAt: now.Add(time.Hour)})
	require.NoError(t, err)

	pending, err := db.PendingTasks(ctx, guildID)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	tasks, err := db.DueTasks(ctx, now)
	require.NoError(t, err)

	var ids []int64
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	assert.Contains(t, ids, due.ID)
	assert.NotContains(t, ids, later.ID)

	require.NoError(t, db.DeleteTask(ctx, due.ID))
	require.NoError(t, db.DeleteTask(ctx, later.ID))

	pending, err = db.PendingTasks(ctx, guildID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
