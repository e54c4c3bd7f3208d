// Package moderation has the ban, kick, lookup, and addemoji commands.
package moderation

import (
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"go.uber.org/zap"
)

type Bot struct {
	*bot.Bot

	log *zap.SugaredLogger
	now func() time.Time
}

func Setup(root *bot.Bot) {
	b := &Bot{
		Bot: root,
		log: root.Log.Named("moderation"),
		now: time.Now,
	}
	b.log.Debug("Adding moderation commands")

	root.Commands.Add(
		&bot.Command{
			Name:        "ban",
			Description: "Bans a user from the server",
			Permissions: discord.PermissionBanMembers,
			Options: []bot.Option{
				{Name: "user", Description: "The user to ban", Type: bot.UserOption, Required: true},
				{Name: "reason", Description: "The reason for the ban"},
				{Name: "duration", Description: "How long to ban them for, for example 1d12h", Type: bot.DurationOption},
			},
			Execute: b.ban,
		},
		&bot.Command{
			Name:        "kick",
			Description: "Kicks a user",
			Permissions: discord.PermissionKickMembers,
			Options: []bot.Option{
				{Name: "user", Description: "The user to kick", Type: bot.UserOption, Required: true},
				{Name: "reason", Description: "The reason for the kick"},
			},
			Execute: b.kick,
		},
		&bot.Command{
			Name:        "lookup",
			Description: "Shows information about a user or role",
			Permissions: discord.PermissionManageMessages,
			Options: []bot.Option{
				{Name: "target", Description: "A user or role mention, or an ID", Required: true},
			},
			Execute: b.lookup,
		},
		&bot.Command{
			Name:        "addemoji",
			Description: "Adds an emoji to the server",
			Usage:       "<name> (with an image attached)",
			Permissions: discord.PermissionManageEmojisAndStickers,
			Options: []bot.Option{
				{Name: "name", Description: "The emoji's name", Required: true},
				{Name: "image", Description: "The emoji image", Type: bot.AttachmentOption, Required: true},
			},
			Execute: b.addEmoji,
		},
	)
}
