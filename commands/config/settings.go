package config

import (
	"fmt"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
	"github.com/jamesatjaminit/Jam-Bot/settings"
)

// MaxPrefixLength is the longest prefix a server can set.
const MaxPrefixLength = 10

type kind int

const (
	kindString kind = iota
	kindBool
	kindChannel
)

type setting struct {
	Name        string
	Key         string
	Description string
	Kind        kind
}

var settingList = []setting{
	{"prefix", settings.KeyPrefix, "The prefix for commands", kindString},
	{"modlog", settings.KeyModLogChannel, "The channel moderation logs are sent to", kindChannel},
	{"logdeletes", settings.KeyLogDeletedMessages, "Whether deleted messages are logged", kindBool},
	{"joinleaves", settings.KeyLogJoinLeaves, "Whether members joining are logged", kindBool},
	{"suggestions", settings.KeySuggestionChannel, "The channel suggestions are sent to", kindChannel},
}

func findSetting(name string) (setting, bool) {
	for _, s := range settingList {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return setting{}, false
}

// clearWords reset a channel setting.
var clearWords = []string{"off", "none", "reset", "clear"}

func (bot *Bot) settings(ctx *bot.Context) error {
	guildID := ctx.GuildID.String()

	if !ctx.Has("setting") {
		return ctx.Reply("", bot.overview(ctx))
	}

	s, ok := findSetting(ctx.String("setting"))
	if !ok {
		names := make([]string, 0, len(settingList))
		for _, s := range settingList {
			names = append(names, s.Name)
		}
		return ctx.ReplyEphemeral(fmt.Sprintf("That isn't a setting! Valid settings are: %v", strings.Join(names, ", ")))
	}

	if !ctx.Has("value") {
		v, _ := bot.Settings.Get(ctx, guildID, s.Key)
		return ctx.Reply(fmt.Sprintf("**%v** is currently %v.", s.Name, bot.format(ctx, s, v)))
	}

	v, msg := parseValue(ctx, s)
	if msg != "" {
		return ctx.ReplyEphemeral(msg)
	}

	var ch *discord.Channel
	if s.Kind == kindChannel && v != "" {
		sf, _ := discord.ParseSnowflake(v.(string))

		var err error
		ch, err = bot.State.Channel(discord.ChannelID(sf))
		if err != nil || ch.GuildID != ctx.GuildID {
			return ctx.ReplyEphemeral("Not a valid channel!")
		}
	}

	err := bot.Settings.Set(ctx, guildID, s.Key, v)
	if err != nil {
		return errors.Wrapf(err, "setting %v", s.Key)
	}

	if s.Key == settings.KeySuggestionChannel && ch != nil {
		_, err = bot.State.SendMessage(ch.ID, "Suggestions will be sent here!")
		if err != nil {
			bot.log.Errorf("sending suggestion channel message to %v: %v", ch.ID, err)
		}
	}

	return ctx.Reply(fmt.Sprintf("Set **%v** to %v.", s.Name, bot.format(ctx, s, v)))
}

// parseValue returns the value to store for a setting, or a message explaining why the given value is invalid.
func parseValue(ctx *bot.Context, s setting) (any, string) {
	raw := strings.TrimSpace(ctx.String("value"))

	switch s.Kind {
	case kindBool:
		b, ok := ctx.Bool("value")
		if !ok {
			return nil, fmt.Sprintf("You need to specify whether you want to turn %v 'on' or 'off'", s.Name)
		}
		return b, ""
	case kindChannel:
		if common.Contains(clearWords, strings.ToLower(raw)) {
			return "", ""
		}
		id, ok := ctx.Channel("value")
		if !ok {
			return nil, "You need to specify a channel!"
		}
		return id.String(), ""
	}

	switch {
	case raw == "":
		return nil, fmt.Sprintf("You need to give a value for %v.", s.Name)
	case s.Key == settings.KeyPrefix && len([]rune(raw)) > MaxPrefixLength:
		return nil, fmt.Sprintf("Prefixes can't be longer than %v characters.", MaxPrefixLength)
	}
	return raw, ""
}

func (bot *Bot) format(ctx *bot.Context, s setting, v any) string {
	return formatValue(s, v, bot.Prefix(ctx, 0))
}

// formatValue formats a stored value for display.
func formatValue(s setting, v any, defaultPrefix string) string {
	switch s.Kind {
	case kindBool:
		if b, _ := settings.AsBool(v); b {
			return "on"
		}
		return "off"
	case kindChannel:
		str, _ := settings.AsString(v)
		if str == "" {
			return "not set"
		}
		return "<#" + str + ">"
	}

	str, ok := settings.AsString(v)
	if !ok || str == "" {
		if s.Key == settings.KeyPrefix {
			return fmt.Sprintf("`%v` (default)", defaultPrefix)
		}
		return "not set"
	}
	return "`" + str + "`"
}

func (bot *Bot) overview(ctx *bot.Context) *embed.Embed {
	e := embed.New("Settings", common.ColourBlue)

	for _, s := range settingList {
		v, _ := bot.Settings.Get(ctx, ctx.GuildID.String(), s.Key)
		e.AddField(s.Name, fmt.Sprintf("%v\n%v", s.Description, bot.format(ctx, s, v)), true)
	}

	return e.SetFooter(fmt.Sprintf("Use %vsettings <setting> <value> to change a setting.", bot.Prefix(ctx, ctx.GuildID)))
}
