package stats

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNilClient(t *testing.T) {
	t.Parallel()

	var c *Client
	assert.NotPanics(t, func() {
		c.RegisterEvent("MessageCreateEvent")
		c.IncCommand("snipe")
		c.IncQuery()
		c.IncRequest("GET", "/api/v10/channels/1", 200)
		c.Submit()
		c.Close()
	})

	assert.Nil(t, New("", "", "", "", zap.NewNop().Sugar()))
}

func TestCounters(t *testing.T) {
	t.Parallel()

	c := &Client{
		commands: make(map[string]uint32),
		events:   make(map[string]uint32),
		requests: make(map[string]uint32),
	}

	c.EventHandler(&gateway.MessageDeleteEvent{})
	c.EventHandler(&gateway.MessageDeleteEvent{})
	c.IncCommand("snipe")
	c.IncRequest("GET", "/api/v10/channels/123456789012345678/messages/123456789012345679", 404)

	assert.Equal(t, uint32(2), c.events["MessageDeleteEvent"])
	assert.Equal(t, uint32(1), c.commands["snipe"])
	assert.Equal(t, uint32(1), c.requests["GET /channels/{channel_id}/messages/{message_id} 4xx"])
}

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"/guilds/123456789012345678/bans/123456789012345679", "/guilds/{guild_id}/bans/{user_id}"},
		{"/webhooks/123456789012345678/secret-token", "/webhooks/{webhook_id}/{webhook_token}"},
		{"/interactions/123456789012345678/token/callback", "/interactions/{interaction_id}/{interaction_token}/callback"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePath(tt.in))
	}

	assert.Equal(t, "/webhooks/1/:token", LoggingName("/webhooks/1/abc"))
}
