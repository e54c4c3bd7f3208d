// Package members logs members joining and leaving a guild, and the bot joining and leaving guilds.
package members

import (
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/embed"
	"go.uber.org/zap"
)

// stateCache returns guilds and members from the state cache.
type stateCache interface {
	Guild(discord.GuildID) (*discord.Guild, error)
	Member(discord.GuildID, discord.UserID) (*discord.Member, error)
}

// logSender sends log embeds.
type logSender interface {
	SendLog(discord.ChannelID, ...*embed.Embed)
}

type Bot struct {
	*bot.Bot

	log    *zap.SugaredLogger
	now    func() time.Time
	cache  stateCache
	sender logSender
}

func Setup(root *bot.Bot) {
	bot := &Bot{
		Bot:    root,
		log:    root.Log.Named("members"),
		now:    time.Now,
		cache:  root.State.Cabinet,
		sender: root,
	}
	bot.log.Debug("Adding member and guild handlers")

	bot.AddHandler(
		// join logs
		bot.guildMemberAdd,
		// logging guild joins
		bot.guildCreate,
		// shard ready logging
		bot.ready,
	)

	// the guild and member are removed from the cache after these events
	bot.AddPreHandler(
		bot.guildDelete,
		bot.guildMemberRemove,
	)
}
