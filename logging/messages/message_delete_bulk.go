package messages

import (
	"github.com/diamondburned/arikawa/v3/gateway"
)

// messageDeleteBulk records snipes for purged messages. Purges aren't sent to the mod log.
func (bot *Bot) messageDeleteBulk(ev *gateway.MessageDeleteBulkEvent) {
	if !ev.GuildID.IsValid() {
		return
	}

	var recorded int
	for _, id := range ev.IDs {
		m, err := bot.cache.Message(ev.ChannelID, id)
		if err != nil {
			continue
		}
		m.GuildID = ev.GuildID

		bot.Snipes.Record(deleteSnipe(*m))
		recorded++
	}

	bot.log.Debugf("recorded %v/%v bulk deleted messages in channel %v", recorded, len(ev.IDs), ev.ChannelID)
}
