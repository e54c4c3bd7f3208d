package moderation

import (
	"github.com/jamesatjaminit/Jam-Bot/bot"
)

func (bot *Bot) kick(ctx *bot.Context) error {
	target, msg, err := bot.target(ctx, "kick", true)
	if err != nil {
		return err
	}
	if msg != "" {
		return ctx.ReplyEphemeral(msg)
	}

	reason := ctx.String("reason")

	err = bot.State.Kick(ctx.GuildID, target.ID, auditReason(ctx.Author, "kick", reason))
	if err != nil {
		if isForbidden(err) {
			return ctx.ReplyEphemeral("I don't have permission to kick them, make sure I can kick people!")
		}
		return err
	}

	bot.modLog(ctx, actionEmbed("User kicked", *target, ctx.Author, reason))
	return ctx.Reply(resultMessage(target.Mention(), "kicked", reason, 0))
}
