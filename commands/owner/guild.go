package owner

import (
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
)

func (bot *Bot) guild(ctx *bot.Context) error {
	sf, err := discord.ParseSnowflake(ctx.String("id"))
	if err != nil || !sf.IsValid() {
		return ctx.ReplyEphemeral("You need to specify a guild ID.")
	}
	id := discord.GuildID(sf)

	g, err := bot.State.GuildWithCount(id)
	if err != nil {
		bot.log.Debugf("getting guild %v: %v", id, err)
		return ctx.ReplyEphemeral("I couldn't find that guild. Am I in it?")
	}

	var channels int
	if chs, err := bot.State.Cabinet.Channels(id); err == nil {
		channels = len(chs)
	}

	return ctx.Reply("", guildInfo(*g, channels, time.Now()))
}

// guildInfo returns an embed with information about a guild.
// If channels is zero, the channel count is omitted.
func guildInfo(g discord.Guild, channels int, now time.Time) *embed.Embed {
	created := g.ID.Time()

	e := embed.New(g.Name, common.ColourBlue).
		SetFooter("ID: "+g.ID.String()).
		SetTimestamp(now)

	if g.Icon != "" {
		e.Thumbnail = g.IconURL()
	}

	if g.OwnerID.IsValid() {
		e.AddField("Owner", fmt.Sprintf("%v\nID: %v", g.OwnerID.Mention(), g.OwnerID), true)
	}
	if g.ApproximateMembers > 0 {
		e.AddField("Members", fmt.Sprintf("%v (%v online)",
			humanize.Comma(int64(g.ApproximateMembers)), humanize.Comma(int64(g.ApproximatePresences))), true)
	}
	if channels > 0 {
		e.AddField("Channels", fmt.Sprint(channels), true)
	}
	e.AddField("Roles", fmt.Sprint(len(g.Roles)), true)
	e.AddField("Created", fmt.Sprintf("<t:%v>\n%v", created.Unix(), humanize.RelTime(created, now, "ago", "from now")), true)

	return e
}
