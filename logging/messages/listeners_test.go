package messages

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
	"github.com/jamesatjaminit/Jam-Bot/settings"
	"github.com/jamesatjaminit/Jam-Bot/snipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	ownerID   discord.UserID    = 1
	guildID   discord.GuildID   = 30
	channelID discord.ChannelID = 20
	modLogID  discord.ChannelID = 50
)

type memoryBackend struct {
	mu   sync.Mutex
	docs map[string]settings.Document
}

func (m *memoryBackend) FindOne(_ context.Context, guildID string) (settings.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[guildID]
	if !ok {
		return nil, settings.ErrNotFound
	}
	return doc, nil
}

func (m *memoryBackend) ReplaceOne(_ context.Context, guildID string, doc settings.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[guildID] = doc
	return nil
}

type fakeCache map[discord.MessageID]discord.Message

func (c fakeCache) Message(_ discord.ChannelID, id discord.MessageID) (*discord.Message, error) {
	m, ok := c[id]
	if !ok {
		return nil, settings.ErrNotFound
	}
	return &m, nil
}

type sentLog struct {
	channelID discord.ChannelID
	embeds    []*embed.Embed
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentLog
}

func (f *fakeSender) SendLog(channelID discord.ChannelID, embeds ...*embed.Embed) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentLog{channelID, embeds})
}

func testModule(doc settings.Document, cache fakeCache) (*Bot, *fakeSender) {
	backend := &memoryBackend{docs: map[string]settings.Document{}}
	if doc != nil {
		backend.docs[guildID.String()] = doc
	}

	sender := &fakeSender{}
	return &Bot{
		Bot: &bot.Bot{
			Log:      zap.NewNop().Sugar(),
			Settings: settings.New(backend),
			Snipes:   snipe.New(time.Minute, snipe.WithOwners(ownerID.String())),
			Owners:   common.NewSet(ownerID),
		},
		log:    zap.NewNop().Sugar(),
		cache:  cache,
		sender: sender,
	}, sender
}

func cachedMessage(id discord.MessageID, author discord.User, content string) discord.Message {
	return discord.Message{ID: id, ChannelID: channelID, Author: author, Content: content}
}

func TestMessageDeleteModLog(t *testing.T) {
	t.Parallel()

	user := discord.User{ID: 40, Username: "jam", Discriminator: "0001"}
	botUser := discord.User{ID: 41, Username: "robot", Discriminator: "0002", Bot: true}
	owner := discord.User{ID: ownerID, Username: "owner", Discriminator: "0003"}

	enabled := settings.Document{
		settings.KeyLogDeletedMessages: true,
		settings.KeyModLogChannel:      modLogID.String(),
	}

	tests := []struct {
		name   string
		doc    settings.Document
		author discord.User
		logged bool
	}{
		{"enabled", enabled, user, true},
		{"no settings", nil, user, false},
		{"toggle off", settings.Document{
			settings.KeyLogDeletedMessages: false,
			settings.KeyModLogChannel:      modLogID.String(),
		}, user, false},
		{"no mod log channel", settings.Document{settings.KeyLogDeletedMessages: true}, user, false},
		{"bot author", enabled, botUser, false},
		{"owner author", enabled, owner, false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			b, sender := testModule(test.doc, fakeCache{
				100: cachedMessage(100, test.author, "deleted content"),
			})

			b.messageDelete(&gateway.MessageDeleteEvent{ID: 100, ChannelID: channelID, GuildID: guildID})

			// every cached delete is recorded, even if it's hidden from snipe queries
			assert.Equal(t, 1, b.Snipes.Len())

			if !test.logged {
				assert.Empty(t, sender.sent)
				return
			}

			require.Len(t, sender.sent, 1)
			assert.Equal(t, modLogID, sender.sent[0].channelID)
			require.Len(t, sender.sent[0].embeds, 1)
			assert.Equal(t, "Message deleted", sender.sent[0].embeds[0].Title)
			assert.Equal(t, "deleted content", sender.sent[0].embeds[0].Description)
		})
	}
}

func TestMessageDeleteIgnored(t *testing.T) {
	t.Parallel()

	b, sender := testModule(settings.Document{
		settings.KeyLogDeletedMessages: true,
		settings.KeyModLogChannel:      modLogID.String(),
	}, fakeCache{})

	// not cached
	b.messageDelete(&gateway.MessageDeleteEvent{ID: 100, ChannelID: channelID, GuildID: guildID})
	// DMs
	b.messageDelete(&gateway.MessageDeleteEvent{ID: 100, ChannelID: channelID})

	assert.Zero(t, b.Snipes.Len())
	assert.Empty(t, sender.sent)
}

func TestMessageUpdateRecordsEdit(t *testing.T) {
	t.Parallel()

	user := discord.User{ID: 40, Username: "jam", Discriminator: "0001"}
	b, _ := testModule(nil, fakeCache{100: cachedMessage(100, user, "before")})

	b.messageUpdate(&gateway.MessageUpdateEvent{Message: discord.Message{
		ID: 100, ChannelID: channelID, GuildID: guildID, Author: user, Content: "after",
	}})

	snipes := b.Snipes.Query(channelID.String(), snipe.Edit)
	require.Len(t, snipes, 1)
	assert.Equal(t, "before", snipes[0].OldContent)
	assert.Equal(t, "after", snipes[0].Content)
}

func TestMessageDeleteBulk(t *testing.T) {
	t.Parallel()

	user := discord.User{ID: 40, Username: "jam", Discriminator: "0001"}
	b, sender := testModule(settings.Document{
		settings.KeyLogDeletedMessages: true,
		settings.KeyModLogChannel:      modLogID.String(),
	}, fakeCache{
		100: cachedMessage(100, user, "one"),
		101: cachedMessage(101, user, "two"),
	})

	b.messageDeleteBulk(&gateway.MessageDeleteBulkEvent{
		IDs:       []discord.MessageID{100, 101, 102},
		ChannelID: channelID,
		GuildID:   guildID,
	})

	assert.Len(t, b.Snipes.Query(channelID.String(), snipe.Delete), 2)
	assert.Empty(t, sender.sent, "purges aren't sent to the mod log")
}
