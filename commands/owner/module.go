// Package owner has commands only the bot owners can use.
package owner

import (
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"go.uber.org/zap"
)

type Bot struct {
	*bot.Bot

	log *zap.SugaredLogger
}

func Setup(root *bot.Bot) {
	b := &Bot{
		Bot: root,
		log: root.Log.Named("owner"),
	}
	b.log.Debug("Adding owner commands")

	root.Commands.Add(&bot.Command{
		Name:        "guild",
		Description: "Gets information about a server the bot is in",
		OwnerOnly:   true,
		AllowInDM:   true,
		Options: []bot.Option{{
			Name:        "id",
			Description: "The server ID",
			Required:    true,
		}},
		Execute: b.guild,
	})
}
