package moderation

import (
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	id, ok := parseRole("<@&123>")
	assert.True(t, ok)
	assert.Equal(t, discord.RoleID(123), id)

	for _, s := range []string{"123", "<@123>", "<@!123>", "<@&abc>", "<@&0>", "role"} {
		_, ok := parseRole(s)
		assert.False(t, ok, s)
	}
}

func TestMemberEmbed(t *testing.T) {
	t.Parallel()

	now := time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)
	mod := discord.User{ID: 5, Username: "mod", Discriminator: "0001"}
	roles := []discord.Role{
		{ID: 100, Position: 1},
		{ID: 200, Position: 5},
		{ID: 300, Position: 10},
	}

	m := discord.Member{
		User:    discord.User{ID: 2, Username: "target", Discriminator: "0002", Bot: true},
		RoleIDs: []discord.RoleID{100, 300},
		Joined:  discord.NewTimestamp(now.Add(-time.Hour)),
	}

	e := memberEmbed(m, roles, mod, now)
	assert.Equal(t, "User: target#0002", e.Author)
	assert.Equal(t, "Command issued by mod#0001", e.Footer)
	assert.Equal(t, now, e.Timestamp)

	if assert.Len(t, e.Fields, 6) {
		assert.Equal(t, "target", e.Fields[0].Value, "nickname falls back to the username")
		assert.Equal(t, "Joined", e.Fields[2].Name)
		assert.Equal(t, "Yes", e.Fields[3].Value)
		assert.Equal(t, "2", e.Fields[4].Value)
		assert.Equal(t, "Roles (2)", e.Fields[5].Name)
		assert.Equal(t, "<@&300> <@&100>", e.Fields[5].Value)
	}

	m.Nick = "nick"
	m.RoleIDs = nil
	m.Joined = discord.Timestamp{}
	e = memberEmbed(m, roles, mod, now)
	if assert.Len(t, e.Fields, 5) {
		assert.Equal(t, "nick", e.Fields[0].Value)
		assert.Equal(t, "None", e.Fields[4].Value)
	}
}

func TestRoleEmbed(t *testing.T) {
	t.Parallel()

	mod := discord.User{ID: 5, Username: "mod", Discriminator: "0001"}
	e := roleEmbed(discord.Role{ID: 100, Name: "Helpers", Color: 0x14904B, Position: 3}, mod, time.Time{})

	assert.Equal(t, "Role: Helpers", e.Author)
	assert.Equal(t, "Command issued by mod#0001", e.Footer)
	if assert.Len(t, e.Fields, 5) {
		assert.Equal(t, "No", e.Fields[1].Value)
		assert.Equal(t, "#14904B", e.Fields[2].Value)
		assert.Equal(t, "3", e.Fields[3].Value)
		assert.Equal(t, "100", e.Fields[4].Value)
	}
}

func TestCheckEmojiName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", checkEmojiName("party_parrot"))
	assert.Equal(t, "", checkEmojiName("ab"))
	assert.Equal(t, "Make sure you name your emoji!", checkEmojiName(""))
	assert.Equal(t, "Emoji names have to be between 2 and 32 characters long.", checkEmojiName("a"))
	assert.Equal(t, "Emoji names have to be between 2 and 32 characters long.", checkEmojiName("abcdefghijklmnopqrstuvwxyz0123456"))
	assert.Equal(t, "Emoji names can only contain letters, numbers, and underscores.", checkEmojiName("party-parrot"))
	assert.Equal(t, "Emoji names can only contain letters, numbers, and underscores.", checkEmojiName("pärty"))
}

func TestEmojiContentType(t *testing.T) {
	t.Parallel()

	ct, ok := emojiContentType("image/PNG; charset=binary")
	assert.True(t, ok)
	assert.Equal(t, "image/png", ct)

	_, ok = emojiContentType("image/webp")
	assert.False(t, ok)
	_, ok = emojiContentType("text/html; charset=utf-8")
	assert.False(t, ok)
}
