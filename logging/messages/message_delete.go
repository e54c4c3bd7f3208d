package messages

import (
	"context"
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
	"github.com/jamesatjaminit/Jam-Bot/settings"
	"github.com/jamesatjaminit/Jam-Bot/snipe"
)

func (bot *Bot) messageDelete(ev *gateway.MessageDeleteEvent) {
	if !ev.GuildID.IsValid() {
		bot.log.Debugf("message with ID %v is in DMs, ignoring", ev.ID)
		return
	}

	m, err := bot.cache.Message(ev.ChannelID, ev.ID)
	if err != nil {
		bot.log.Debugf("message %v in channel %v isn't cached, ignoring", ev.ID, ev.ChannelID)
		return
	}
	m.GuildID = ev.GuildID

	bot.Snipes.Record(deleteSnipe(*m))

	if m.Author.Bot || bot.IsOwner(m.Author.ID) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logChannel, ok := bot.ModLog(ctx, ev.GuildID, settings.KeyLogDeletedMessages)
	if !ok {
		bot.log.Debugf("message delete logs are disabled in guild %v", ev.GuildID)
		return
	}

	content := m.Content
	if len(content) > hasteThreshold {
		url, err := bot.APIs.Haste(ctx, content)
		if err != nil {
			bot.log.Errorf("uploading content of message %v to hastebin: %v", m.ID, err)
		} else {
			content = fmt.Sprintf("Message too long, content uploaded to %v", url)
		}
	}

	bot.sender.SendLog(logChannel, deleteEmbed(*m, content))
}

func deleteSnipe(m discord.Message) snipe.Message {
	return snipe.Message{
		MessageID: m.ID.String(),
		ChannelID: m.ChannelID.String(),
		GuildID:   m.GuildID.String(),
		AuthorID:  m.Author.ID.String(),
		AuthorTag: m.Author.Tag(),
		Bot:       m.Author.Bot,
		Type:      snipe.Delete,
		Content:   m.Content,
	}
}

func deleteEmbed(m discord.Message, content string) *embed.Embed {
	e := embed.New("Message deleted", common.ColourRed).
		SetAuthor(m.Author.Tag(), m.Author.AvatarURL()).
		SetDescription(common.OrDefault(content, "*No content*")).
		SetFooter("ID: " + m.ID.String()).
		SetTimestamp(m.ID.Time())

	e.AddField("Channel", fmt.Sprintf("%v\nID: %v", m.ChannelID.Mention(), m.ChannelID), true)
	e.AddField("Author", fmt.Sprintf("%v\n%v\nID: %v", m.Author.Mention(), m.Author.Tag(), m.Author.ID), true)

	if len(m.Attachments) > 0 {
		var s string
		for _, a := range m.Attachments {
			s += a.Filename + "\n"
		}
		e.AddField("Attachments", s, false)
	}
	return e
}
