package general

import (
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/jamesatjaminit/Jam-Bot/bot"
)

func (bot *Bot) invite(ctx *bot.Context) error {
	inv, err := bot.State.CreateInvite(ctx.ChannelID, api.CreateInviteData{
		AuditLogReason: api.AuditLogReason("invite created by " + ctx.Author.Tag()),
	})
	if err != nil {
		return err
	}
	return ctx.Reply("Invite link: " + inviteURL(inv.Code))
}

func inviteURL(code string) string {
	return "https://discord.gg/" + code
}
