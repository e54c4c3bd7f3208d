package members

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/dustin/go-humanize"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
	"github.com/jamesatjaminit/Jam-Bot/settings"
)

func (bot *Bot) guildMemberRemove(ev *gateway.GuildMemberRemoveEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logChannel, ok := bot.ModLog(ctx, ev.GuildID, settings.KeyLogJoinLeaves)
	if !ok {
		return
	}

	// nil if the member wasn't cached
	m, err := bot.cache.Member(ev.GuildID, ev.User.ID)
	if err != nil {
		bot.log.Debugf("member %v in guild %v isn't cached", ev.User.ID, ev.GuildID)
		m = nil
	}

	bot.sender.SendLog(logChannel, leaveEmbed(ev.User, m, bot.now()))
}

func leaveEmbed(u discord.User, m *discord.Member, now time.Time) *embed.Embed {
	e := embed.New("Member left", common.ColourGold).
		SetAuthor(u.Tag(), u.AvatarURL()).
		SetDescription(fmt.Sprintf("%v %v", u.Mention(), u.Tag())).
		SetFooter("ID: " + u.ID.String()).
		SetTimestamp(now)

	if m == nil {
		return e
	}

	if m.Joined.IsValid() {
		joined := m.Joined.Time()
		e.AddField("Joined", fmt.Sprintf("<t:%d>\n%v", joined.Unix(), humanize.RelTime(joined, now, "ago", "from now")), true)
	}

	if len(m.RoleIDs) > 0 {
		roles := make([]string, 0, len(m.RoleIDs))
		for _, r := range m.RoleIDs {
			roles = append(roles, r.Mention())
		}

		v := strings.Join(roles, ", ")
		if len(v) > 1000 {
			v = v[:1000] + "..."
		}
		e.AddField("Roles", v, false)
	}
	return e
}
