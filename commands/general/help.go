package general

import (
	"fmt"
	"strings"

	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
)

func (bot *Bot) help(ctx *bot.Context) error {
	prefix := bot.Prefix(ctx, ctx.GuildID)

	if name := ctx.String("command"); name != "" {
		cmd, ok := bot.Commands.Get(name)
		if !ok {
			return ctx.ReplyEphemeral(fmt.Sprintf("No command named `%v` found.", name))
		}
		return ctx.Reply("", commandHelp(cmd, prefix))
	}

	e := embed.New("Jam-Bot help", common.ColourPurple).
		SetDescription(fmt.Sprintf("Use `%vhelp <command>` for more information on a command.\nAll commands are also available as slash commands.", prefix)).
		SetFooter("Version " + common.Version())

	var b strings.Builder
	for _, cmd := range bot.Commands.List() {
		if cmd.OwnerOnly {
			continue
		}
		fmt.Fprintf(&b, "`%v%v`: %v\n", prefix, cmd.Name, cmd.Description)
	}
	e.AddField("Commands", b.String(), false)

	if bot.Config.Info.SupportServer != "" {
		e.AddField("Support server", "Use this link to join the support server: "+bot.Config.Info.SupportServer, false)
	}

	return ctx.ReplyEphemeral("", e)
}

func commandHelp(cmd *bot.Command, prefix string) *embed.Embed {
	e := embed.New(prefix+cmd.Name, common.ColourPurple).
		SetDescription(cmd.Description)

	e.AddField("Usage", "`"+prefix+cmd.UsageString()+"`", false)

	if cmd.Permissions != 0 {
		e.AddField("Required permissions", strings.Join(common.PermStrings(cmd.Permissions), ", "), false)
	}
	if cmd.OwnerOnly {
		e.AddField("Required permissions", "Bot owner", false)
	}
	if !cmd.AllowInDM {
		e.SetFooter("This command can't be used in DMs.")
	}
	return e
}
