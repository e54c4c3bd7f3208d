// Package general has commands anyone can use: snipe, uptime, define, shorten, invite, help and debug.
package general

import (
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"go.uber.org/zap"
)

// DefinitionTTL is how long dictionary lookups, including failed ones, are cached.
const DefinitionTTL = 24 * time.Hour

type Bot struct {
	*bot.Bot

	log         *zap.SugaredLogger
	definitions *ttlcache.Cache
}

// New creates the module without registering its commands.
func New(root *bot.Bot) *Bot {
	definitions := ttlcache.NewCache()
	_ = definitions.SetTTL(DefinitionTTL)
	definitions.SkipTTLExtensionOnHit(true)

	return &Bot{
		Bot:         root,
		log:         root.Log.Named("general"),
		definitions: definitions,
	}
}

func Setup(root *bot.Bot) {
	b := New(root)
	b.log.Debug("Adding general commands")

	root.Commands.Add(
		&bot.Command{
			Name:        "snipe",
			Description: "Snipes deleted and edited messages",
			Usage:       "[deletes|edits]",
			Options: []bot.Option{{
				Name:        "type",
				Description: "The type of message to snipe",
				Choices:     []string{"deletes", "edits"},
			}},
			Execute: b.snipe,
		},
		&bot.Command{
			Name:        "uptime",
			Description: "Displays the bot's current uptime",
			AllowInDM:   true,
			Execute:     b.uptime,
		},
		&bot.Command{
			Name:        "debug",
			Description: "Displays debug information",
			Permissions: discord.PermissionManageGuild,
			Execute:     b.debug,
		},
		&bot.Command{
			Name:        "help",
			Description: "Shows a list of commands, or help for a single command",
			AllowInDM:   true,
			Options: []bot.Option{{
				Name:        "command",
				Description: "The command to show help for",
			}},
			Execute: b.help,
		},
		&bot.Command{
			Name:        "define",
			Description: "Defines a word",
			AllowInDM:   true,
			Options: []bot.Option{
				{Name: "word", Description: "The word you'd like to define", Required: true},
				{Name: "type", Description: "The part of speech, for example noun or verb"},
				{Name: "page", Description: "The page of definitions", Type: bot.IntegerOption},
			},
			Execute: b.define,
		},
		&bot.Command{
			Name:        "shorten",
			Description: "Shortens a link",
			AllowInDM:   true,
			Options: []bot.Option{{
				Name:        "url",
				Description: "The link to shorten",
				Required:    true,
			}},
			Execute: b.shorten,
		},
		&bot.Command{
			Name:        "invite",
			Description: "Creates an invite to this channel",
			Permissions: discord.PermissionCreateInstantInvite,
			Execute:     b.invite,
		},
	)
}
