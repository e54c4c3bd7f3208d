package general

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
	"github.com/jamesatjaminit/Jam-Bot/stats"
)

func (bot *Bot) debug(ctx *bot.Context) error {
	err := ctx.Defer()
	if err != nil {
		return err
	}

	e := embed.New("Debug information", common.ColourPurple).
		SetFooter("Initiated by " + ctx.Author.Tag()).
		SetTimestamp(time.Now())

	if gw := bot.State.Gateway(); gw != nil {
		e.AddField("API latency", gw.Latency().Round(time.Millisecond).String(), true)
	}
	e.AddField("Uptime", strings.TrimSpace(humanize.RelTime(bot.StartTime, time.Now(), "", "")), true)
	e.AddField("Guild", ctx.GuildID.String(), true)
	e.AddField("Version", common.Version(), true)
	e.AddField("Go version", runtime.Version(), true)

	e.AddField("Cache", fmt.Sprintf("%v settings\n%v snipes\n%v definitions",
		bot.Settings.Len(), bot.Snipes.Len(), bot.definitions.Count()), true)

	sys, err := stats.System()
	if err != nil {
		bot.log.Errorf("getting system stats: %v", err)
		e.AddField("Memory", humanize.Bytes(sys.Alloc)+" allocated", true)
	} else {
		e.AddField("Memory", fmt.Sprintf("%v allocated\n%v/%v used by host (%.1f%%)",
			humanize.Bytes(sys.Alloc), humanize.Bytes(sys.UsedMemory), humanize.Bytes(sys.TotalMemory), sys.UsedMemoryPercent), true)
		if len(sys.CPU) > 0 {
			e.AddField("CPU", fmt.Sprintf("%.1f%%", sys.CPU[0]), true)
		}
	}
	e.AddField("Goroutines", fmt.Sprint(runtime.NumGoroutine()), true)

	return ctx.Reply("", e)
}
