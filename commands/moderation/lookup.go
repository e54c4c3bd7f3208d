package moderation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
)

func (bot *Bot) lookup(ctx *bot.Context) error {
	target := ctx.String("target")

	roleID, isRole := parseRole(target)
	if !isRole {
		if userID, ok := ctx.User("target"); ok {
			m, err := bot.State.Member(ctx.GuildID, userID)
			if err == nil {
				roles, err := bot.State.Roles(ctx.GuildID)
				if err != nil {
					return errors.Wrap(err, "getting roles")
				}
				return ctx.Reply("", memberEmbed(*m, roles, ctx.Author, bot.now()))
			}
			// a bare ID can be either
			roleID = discord.RoleID(userID)
		}
	}

	if roleID.IsValid() {
		r, err := bot.State.Role(ctx.GuildID, roleID)
		if err == nil {
			return ctx.Reply("", roleEmbed(*r, ctx.Author, bot.now()))
		}
	}
	return ctx.ReplyEphemeral("That is not a valid user or role.")
}

// parseRole parses a role mention. Bare IDs aren't treated as roles.
func parseRole(s string) (discord.RoleID, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "<@&") || !strings.HasSuffix(s, ">") {
		return 0, false
	}

	sf, err := discord.ParseSnowflake(s[3 : len(s)-1])
	if err != nil || !sf.IsValid() {
		return 0, false
	}
	return discord.RoleID(sf), true
}

func memberEmbed(m discord.Member, guildRoles []discord.Role, mod discord.User, now time.Time) *embed.Embed {
	e := embed.New("", common.ColourGreen).
		SetAuthor("User: "+m.User.Tag(), m.User.AvatarURL()).
		AddField("Nickname", common.OrDefault(m.Nick, m.User.Username), true).
		AddField("Account created", fmt.Sprintf("<t:%d:D>", m.User.ID.Time().Unix()), true)

	if m.Joined.IsValid() {
		e.AddField("Joined", fmt.Sprintf("<t:%d:D>", m.Joined.Time().Unix()), true)
	}

	e.AddField("Bot", yesNo(m.User.Bot), true).
		AddField("ID", m.User.ID.String(), true)

	var roles []discord.Role
	for _, r := range guildRoles {
		if common.Contains(m.RoleIDs, r.ID) {
			roles = append(roles, r)
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Position > roles[j].Position })

	mentions := make([]string, 0, len(roles))
	for _, r := range roles {
		mentions = append(mentions, r.ID.Mention())
	}
	e.AddField(fmt.Sprintf("Roles (%d)", len(roles)), common.Truncate(common.OrDefault(strings.Join(mentions, " "), "None"), common.MaxFieldValueLength), false)

	return e.SetFooter("Command issued by " + mod.Tag()).SetTimestamp(now)
}

func roleEmbed(r discord.Role, mod discord.User, now time.Time) *embed.Embed {
	return embed.New("", common.ColourGreen).
		SetAuthor("Role: "+r.Name, "").
		AddField("Created", fmt.Sprintf("<t:%d:D>", r.ID.Time().Unix()), true).
		AddField("Mentionable", yesNo(r.Mentionable), true).
		AddField("Colour", r.Color.String(), true).
		AddField("Position", fmt.Sprint(r.Position), true).
		AddField("ID", r.ID.String(), true).
		SetFooter("Command issued by " + mod.Tag()).
		SetTimestamp(now)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
