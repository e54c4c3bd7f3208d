package messages

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/jamesatjaminit/Jam-Bot/snipe"
)

func (bot *Bot) messageUpdate(ev *gateway.MessageUpdateEvent) {
	if !ev.GuildID.IsValid() || !ev.Author.ID.IsValid() {
		return
	}

	// sometimes we get message update events without any content
	// so we just ignore those
	if ev.Content == "" {
		bot.log.Debugf("got message %v with empty content, ignoring event", ev.ID)
		return
	}

	old, err := bot.cache.Message(ev.ChannelID, ev.ID)
	if err != nil {
		bot.log.Debugf("message %v in channel %v isn't cached, ignoring", ev.ID, ev.ChannelID)
		return
	}

	s, ok := editSnipe(*old, ev.Message)
	if !ok {
		return
	}
	bot.Snipes.Record(s)
}

// editSnipe returns a snipe for an edit, or false if the content didn't change.
func editSnipe(old, updated discord.Message) (snipe.Message, bool) {
	if old.Content == updated.Content {
		return snipe.Message{}, false
	}

	return snipe.Message{
		MessageID:  updated.ID.String(),
		ChannelID:  updated.ChannelID.String(),
		GuildID:    updated.GuildID.String(),
		AuthorID:   updated.Author.ID.String(),
		AuthorTag:  updated.Author.Tag(),
		Bot:        updated.Author.Bot,
		Type:       snipe.Edit,
		OldContent: old.Content,
		Content:    updated.Content,
	}, true
}
