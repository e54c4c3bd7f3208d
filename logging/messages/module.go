// Package messages records deleted and edited messages for the snipe command,
// and logs deleted messages to a guild's mod log.
package messages

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/embed"
	"go.uber.org/zap"
)

// hasteThreshold is the content length above which deleted messages are uploaded to hastebin.
const hasteThreshold = 3900

// messageCache returns messages from the state cache.
type messageCache interface {
	Message(discord.ChannelID, discord.MessageID) (*discord.Message, error)
}

// logSender sends log embeds.
type logSender interface {
	SendLog(discord.ChannelID, ...*embed.Embed)
}

type Bot struct {
	*bot.Bot

	log    *zap.SugaredLogger
	cache  messageCache
	sender logSender
}

func Setup(root *bot.Bot) {
	bot := &Bot{
		Bot:    root,
		log:    root.Log.Named("messages"),
		cache:  root.State.Cabinet,
		sender: root,
	}
	bot.log.Debug("Adding messages handlers")

	// these handlers need the message from the cache, so they must run before it's updated
	bot.AddPreHandler(
		bot.messageDelete,
		bot.messageUpdate,
		bot.messageDeleteBulk,
	)
}
