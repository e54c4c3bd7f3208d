package moderation

import (
	"fmt"
	"net/http"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/httputil"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
)

// target resolves the user an action is performed on.
// If the user can't be acted on, the returned string explains why.
func (bot *Bot) target(ctx *bot.Context, action string, memberOnly bool) (*discord.User, string, error) {
	userID, ok := ctx.User("user")
	if !ok {
		return nil, "You didn't mention a valid user.", nil
	}

	target, err := bot.State.Member(ctx.GuildID, userID)
	if err != nil {
		if memberOnly {
			return nil, "That user isn't in this server.", nil
		}

		u, err := bot.User(ctx.GuildID, userID)
		if err != nil {
			return nil, "You didn't mention a valid user.", nil
		}
		return u, "", nil
	}

	g, err := bot.State.Guild(ctx.GuildID)
	if err != nil {
		return nil, "", errors.Wrap(err, "getting guild")
	}

	roles, err := bot.State.Roles(ctx.GuildID)
	if err != nil {
		return nil, "", errors.Wrap(err, "getting roles")
	}

	var admin bool
	if bot.Perms != nil {
		perms, err := bot.Perms.Permissions(ctx.ChannelID, ctx.Author.ID)
		if err == nil {
			admin = perms.Has(discord.PermissionAdministrator)
		}
	}

	return &target.User, checkTarget(action, g.OwnerID, roles, ctx.Member, target, admin), nil
}

// checkTarget returns why mod can't perform action on target, or an empty string if they can.
// A nil target is a user who isn't a member of the guild.
func checkTarget(action string, ownerID discord.UserID, roles []discord.Role, mod, target *discord.Member, admin bool) string {
	if target == nil {
		return ""
	}

	switch {
	case mod != nil && mod.User.ID == target.User.ID:
		return fmt.Sprintf("You can't %v yourself silly!", action)
	case target.User.ID == ownerID:
		return fmt.Sprintf("You can't %v the server owner.", action)
	case mod == nil || mod.User.ID == ownerID || admin:
		return ""
	}

	if highestRole(roles, target.RoleIDs) >= highestRole(roles, mod.RoleIDs) {
		return fmt.Sprintf("You can't %v them, your role is lower than theirs!", action)
	}
	return ""
}

// highestRole returns the position of the highest role in ids.
func highestRole(roles []discord.Role, ids []discord.RoleID) int {
	pos := 0
	for _, r := range roles {
		if r.Position > pos && common.Contains(ids, r.ID) {
			pos = r.Position
		}
	}
	return pos
}

func auditReason(mod discord.User, action, reason string) api.AuditLogReason {
	if reason == "" {
		reason = "no reason given"
	}
	return api.AuditLogReason(fmt.Sprintf("%v (%v): %v: %v", mod.Tag(), mod.ID, action, reason))
}

// isForbidden returns true if Discord rejected a request because the bot is missing permissions.
func isForbidden(err error) bool {
	var httpErr *httputil.HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusForbidden
}

func actionEmbed(title string, target, mod discord.User, reason string) *embed.Embed {
	e := embed.New(title, common.ColourOrange).
		SetDescription(fmt.Sprintf("%v (%v)", target.Tag(), target.ID)).
		AddField("Responsible moderator", fmt.Sprintf("%v (%v)", mod.Tag(), mod.ID), false)

	if reason != "" {
		e.AddField("Reason", common.Truncate(reason, common.MaxFieldValueLength), false)
	}
	return e
}

// modLog posts e to the guild's mod log channel, if one is set.
func (bot *Bot) modLog(ctx *bot.Context, e *embed.Embed) {
	ch, ok := bot.ModLogChannel(ctx, ctx.GuildID)
	if !ok {
		return
	}
	bot.SendLog(ch, e.SetTimestamp(bot.now()))
}
