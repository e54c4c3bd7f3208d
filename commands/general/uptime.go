package general

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamesatjaminit/Jam-Bot/bot"
)

func (bot *Bot) uptime(ctx *bot.Context) error {
	return ctx.Reply(uptimeString(bot.StartTime, time.Now()))
}

func uptimeString(start, now time.Time) string {
	return fmt.Sprintf("The bot has been up since <t:%d> (%v).", start.Unix(), humanize.RelTime(start, now, "ago", "from now"))
}
