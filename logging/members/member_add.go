package members

import (
	"context"
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/dustin/go-humanize"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
	"github.com/jamesatjaminit/Jam-Bot/settings"
)

// newAccount is the account age under which a joining member is flagged.
const newAccount = 7 * 24 * time.Hour

func (bot *Bot) guildMemberAdd(ev *gateway.GuildMemberAddEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logChannel, ok := bot.ModLog(ctx, ev.GuildID, settings.KeyLogJoinLeaves)
	if !ok {
		return
	}

	var memberCount uint64
	if g, err := bot.cache.Guild(ev.GuildID); err == nil {
		memberCount = g.ApproximateMembers
	}

	bot.sender.SendLog(logChannel, joinEmbed(ev.Member, memberCount, bot.now()))
}

func joinEmbed(m discord.Member, memberCount uint64, now time.Time) *embed.Embed {
	created := m.User.ID.Time()

	e := embed.New("Member joined", common.ColourGreen).
		SetAuthor(m.User.Tag(), m.User.AvatarURL()).
		SetDescription(fmt.Sprintf("%v %v", m.User.Mention(), m.User.Tag())).
		SetFooter("ID: " + m.User.ID.String()).
		SetTimestamp(now)
	e.Thumbnail = m.User.AvatarURL()

	e.AddField("Account created", fmt.Sprintf("<t:%d>\n%v", created.Unix(), humanize.RelTime(created, now, "ago", "from now")), true)
	if memberCount > 0 {
		e.AddField("Member count", humanize.Comma(int64(memberCount)), true)
	}

	if now.Sub(created) < newAccount {
		e.Colour = common.ColourOrange
		e.AddField("New account", "This account was created less than a week ago.", false)
	}
	return e
}
