// Package config has the settings command, used to configure the bot per server.
package config

import (
	"github.com/diamondburned/arikawa/v3/discord"
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
		log: root.Log.Named("config"),
	}
	b.log.Debug("Adding config commands")

	names := make([]string, 0, len(settingList))
	for _, s := range settingList {
		names = append(names, s.Name)
	}

	root.Commands.Add(&bot.Command{
		Name:        "settings",
		Description: "Shows or changes this server's settings",
		Usage:       "[setting] [value]",
		Permissions: discord.PermissionManageGuild,
		Options: []bot.Option{
			{Name: "setting", Description: "The setting to show or change", Choices: names},
			{Name: "value", Description: "The new value"},
		},
		Execute: b.settings,
	})
}
