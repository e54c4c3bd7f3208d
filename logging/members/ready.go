package members

import (
	"fmt"

	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
)

func (bot *Bot) ready(ev *gateway.ReadyEvent) {
	bot.sender.SendLog(bot.Config.Bot.GuildLog, embed.New("Bot ready", common.ColourPurple).
		SetDescription(fmt.Sprintf("Connected to the gateway in %d guilds", len(ev.Guilds))).
		SetFooter(ev.User.Tag()+" • v"+common.Version()).
		SetTimestamp(bot.now()))
}
