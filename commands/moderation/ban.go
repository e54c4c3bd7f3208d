package moderation

import (
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/common/duration"
	"github.com/jamesatjaminit/Jam-Bot/db"
)

func (bot *Bot) ban(ctx *bot.Context) error {
	target, msg, err := bot.target(ctx, "ban", false)
	if err != nil {
		return err
	}
	if msg != "" {
		return ctx.ReplyEphemeral(msg)
	}

	reason := ctx.String("reason")

	var dur time.Duration
	if ctx.Has("duration") {
		d, ok := ctx.Duration("duration")
		if !ok || d <= 0 {
			return ctx.ReplyEphemeral(fmt.Sprintf("%q isn't a valid duration. Try something like 1d12h.", ctx.String("duration")))
		}
		dur = d
	}

	err = bot.State.Ban(ctx.GuildID, target.ID, api.BanData{
		AuditLogReason: auditReason(ctx.Author, "ban", reason),
	})
	if err != nil {
		if isForbidden(err) {
			return ctx.ReplyEphemeral("I don't have permission to ban them, make sure I can ban people!")
		}
		return err
	}

	e := actionEmbed("User banned", *target, ctx.Author, reason)

	if dur > 0 {
		t, err := bot.DB.AddTask(ctx, db.Task{
			GuildID: ctx.GuildID,
			UserID:  target.ID,
			Type:    db.TaskUnban,
			Reason:  reason,
			RunAt:   bot.now().Add(dur),
		})
		if err != nil {
			return err
		}
		bot.log.Debugf("Scheduled unban %v for %v in %v at %v", t.ID, target.ID, ctx.GuildID, t.RunAt)

		e.AddField("Duration", duration.Format(dur), false)
	}

	bot.modLog(ctx, e)
	return ctx.Reply(resultMessage(target.Mention(), "banned", reason, dur))
}

func resultMessage(mention, action, reason string, dur time.Duration) string {
	s := fmt.Sprintf("%v was %v", mention, action)
	if dur > 0 {
		s += " for " + duration.Format(dur)
	}
	if reason != "" {
		s += " with reason: " + reason
	}
	return s
}
