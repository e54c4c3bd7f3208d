package moderation

import (
	"testing"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/httputil"
	"github.com/stretchr/testify/assert"
)

func member(id discord.UserID, roles ...discord.RoleID) *discord.Member {
	return &discord.Member{User: discord.User{ID: id}, RoleIDs: roles}
}

func TestCheckTarget(t *testing.T) {
	t.Parallel()

	const ownerID discord.UserID = 1

	roles := []discord.Role{
		{ID: 100, Position: 1},
		{ID: 200, Position: 5},
		{ID: 300, Position: 10},
	}

	tests := []struct {
		name   string
		mod    *discord.Member
		target *discord.Member
		admin  bool
		out    string
	}{
		{"not a member", member(2, 100), nil, false, ""},
		{"self", member(2, 300), member(2, 300), true, "You can't ban yourself silly!"},
		{"server owner", member(2, 300), member(ownerID), true, "You can't ban the server owner."},
		{"higher role", member(2, 300), member(3, 100, 200), false, ""},
		{"lower role", member(2, 100), member(3, 200), false, "You can't ban them, your role is lower than theirs!"},
		{"same role", member(2, 200), member(3, 200), false, "You can't ban them, your role is lower than theirs!"},
		{"no roles", member(2), member(3), false, "You can't ban them, your role is lower than theirs!"},
		{"admin bypasses roles", member(2, 100), member(3, 300), true, ""},
		{"owner bypasses roles", member(ownerID), member(3, 300), false, ""},
	}

	for _, test := range tests {
		out := checkTarget("ban", ownerID, roles, test.mod, test.target, test.admin)
		assert.Equal(t, test.out, out, test.name)
	}
}

func TestHighestRole(t *testing.T) {
	t.Parallel()

	roles := []discord.Role{{ID: 1, Position: 3}, {ID: 2, Position: 7}, {ID: 3, Position: 5}}

	assert.Equal(t, 7, highestRole(roles, []discord.RoleID{1, 2}))
	assert.Equal(t, 5, highestRole(roles, []discord.RoleID{3}))
	assert.Equal(t, 0, highestRole(roles, nil))
}

func TestResultMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<@1> was kicked", resultMessage("<@1>", "kicked", "", 0))
	assert.Equal(t, "<@1> was banned with reason: spam", resultMessage("<@1>", "banned", "spam", 0))
	assert.Equal(t, "<@1> was banned for 1 day and 12 hours with reason: spam", resultMessage("<@1>", "banned", "spam", 36*time.Hour))
}

func TestAuditReason(t *testing.T) {
	t.Parallel()

	mod := discord.User{ID: 5, Username: "mod", Discriminator: "0001"}
	assert.Equal(t, "mod#0001 (5): ban: spam", string(auditReason(mod, "ban", "spam")))
	assert.Equal(t, "mod#0001 (5): kick: no reason given", string(auditReason(mod, "kick", "")))
}

func TestIsForbidden(t *testing.T) {
	t.Parallel()

	assert.True(t, isForbidden(errors.WithStack(&httputil.HTTPError{Status: 403})))
	assert.False(t, isForbidden(&httputil.HTTPError{Status: 404}))
	assert.False(t, isForbidden(errors.New("oh no")))
}

func TestActionEmbed(t *testing.T) {
	t.Parallel()

	target := discord.User{ID: 2, Username: "target", Discriminator: "0002"}
	mod := discord.User{ID: 5, Username: "mod", Discriminator: "0001"}

	e := actionEmbed("User banned", target, mod, "")
	assert.Equal(t, "target#0002 (2)", e.Description)
	assert.Len(t, e.Fields, 1)

	e = actionEmbed("User banned", target, mod, "spam")
	assert.Len(t, e.Fields, 2)
	assert.Equal(t, "spam", e.Fields[1].Value)
}
