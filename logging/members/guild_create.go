package members

import (
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
)

func (bot *Bot) guildCreate(ev *gateway.GuildCreateEvent) {
	// guild create events are also sent for every guild when connecting,
	// if we joined more than a minute ago it's safe to assume we were already in the guild
	if common.JoinedBefore(ev.Joined, time.Minute, bot.now()) {
		return
	}

	bot.log.Infof("Joined new guild %v (%v)", ev.ID, ev.Name)

	bot.sender.SendLog(bot.Config.Bot.GuildLog, guildEmbed(true, ev.Guild, ev.MemberCount, ev.Joined.Time()))
}

func (bot *Bot) guildDelete(ev *gateway.GuildDeleteEvent) {
	// unavailable guilds are outages, not removals
	if ev.Unavailable {
		return
	}

	g, err := bot.cache.Guild(ev.ID)
	if err != nil {
		g = &discord.Guild{ID: ev.ID, Name: "unknown guild"}
	}

	bot.log.Infof("Left guild %v (%v)", g.ID, g.Name)

	bot.sender.SendLog(bot.Config.Bot.GuildLog, guildEmbed(false, *g, 0, bot.now()))
}

func guildEmbed(joined bool, g discord.Guild, members uint64, t time.Time) *embed.Embed {
	e := embed.New("Joined guild", common.ColourGreen).
		SetDescription(fmt.Sprintf("Joined guild **%v**", g.Name)).
		SetFooter("ID: " + g.ID.String()).
		SetTimestamp(t)
	if !joined {
		e.Title = "Left guild"
		e.Colour = common.ColourRed
		e.Description = fmt.Sprintf("Left guild **%v**", g.Name)
	}

	if g.Icon != "" {
		e.Thumbnail = g.IconURL()
	}
	if members > 0 {
		e.AddField("Members", fmt.Sprint(members), true)
	}
	if g.OwnerID.IsValid() {
		e.AddField("Owner", fmt.Sprintf("%v\nID: %v", g.OwnerID.Mention(), g.OwnerID), true)
	}
	return e
}
