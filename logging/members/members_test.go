package members

import (
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinEmbed(t *testing.T) {
	t.Parallel()

	// snowflakes encode their creation time
	created := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	id := discord.UserID(discord.NewSnowflake(created))
	m := discord.Member{User: discord.User{ID: id, Username: "jam", Discriminator: "0001"}}

	e := joinEmbed(m, 1500, created.Add(365*24*time.Hour))
	assert.Equal(t, "Member joined", e.Title)
	assert.Equal(t, common.ColourGreen, e.Colour)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "1,500", e.Fields[1].Value)

	e = joinEmbed(m, 0, created.Add(time.Hour))
	assert.Equal(t, common.ColourOrange, e.Colour, "new accounts are flagged")
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "New account", e.Fields[1].Name)
}

func TestGuildEmbed(t *testing.T) {
	t.Parallel()

	g := discord.Guild{ID: 1, Name: "Test guild", OwnerID: 2}

	e := guildEmbed(true, g, 10, time.Now())
	assert.Equal(t, "Joined guild", e.Title)
	assert.Equal(t, "Joined guild **Test guild**", e.Description)
	assert.Len(t, e.Fields, 2)

	e = guildEmbed(false, g, 0, time.Now())
	assert.Equal(t, "Left guild", e.Title)
	assert.Equal(t, common.ColourRed, e.Colour)
	assert.Len(t, e.Fields, 1)
}

func TestLeaveEmbed(t *testing.T) {
	t.Parallel()

	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	u := discord.User{ID: 1, Username: "jam", Discriminator: "0001"}

	e := leaveEmbed(u, nil, now)
	assert.Equal(t, "Member left", e.Title)
	assert.Equal(t, common.ColourGold, e.Colour)
	assert.Empty(t, e.Fields)

	m := &discord.Member{
		User:    u,
		Joined:  discord.NewTimestamp(now.Add(-48 * time.Hour)),
		RoleIDs: []discord.RoleID{5, 6},
	}
	e = leaveEmbed(u, m, now)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "Joined", e.Fields[0].Name)
	assert.Contains(t, e.Fields[0].Value, "2 days ago")
	assert.Equal(t, "<@&5>, <@&6>", e.Fields[1].Value)
}
