package bot

import (
	"context"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/jamesatjaminit/Jam-Bot/embed"
	"github.com/jamesatjaminit/Jam-Bot/settings"
)

// Send sends embeds to a log channel. Nothing is sent in test mode or if the channel isn't valid.
func (bot *Bot) Send(channelID discord.ChannelID, embeds ...*embed.Embed) (*discord.Message, error) {
	if !bot.ShouldLog() || !channelID.IsValid() || len(embeds) == 0 {
		return nil, nil
	}

	return bot.State.SendMessageComplex(channelID, api.SendMessageData{
		Embeds:          embed.Discord(embeds...),
		AllowedMentions: &api.AllowedMentions{},
	})
}

// SendLog is Send for handlers that have nothing to do with the sent message. Errors are logged.
func (bot *Bot) SendLog(channelID discord.ChannelID, embeds ...*embed.Embed) {
	_, err := bot.Send(channelID, embeds...)
	if err != nil {
		bot.Log.Errorf("sending log message to channel %v: %v", channelID, err)
	}
}

// ModLog returns the guild's mod log channel if the toggle setting is enabled.
func (bot *Bot) ModLog(ctx context.Context, guildID discord.GuildID, toggle string) (discord.ChannelID, bool) {
	if !guildID.IsValid() || !bot.Settings.Bool(ctx, guildID.String(), toggle) {
		return 0, false
	}
	return bot.ModLogChannel(ctx, guildID)
}

// ModLogChannel returns the guild's mod log channel, if one is set.
func (bot *Bot) ModLogChannel(ctx context.Context, guildID discord.GuildID) (discord.ChannelID, bool) {
	if !guildID.IsValid() {
		return 0, false
	}

	s, ok := bot.Settings.String(ctx, guildID.String(), settings.KeyModLogChannel)
	if !ok {
		return 0, false
	}

	sf, err := discord.ParseSnowflake(s)
	if err != nil || !sf.IsValid() {
		return 0, false
	}
	return discord.ChannelID(sf), true
}
