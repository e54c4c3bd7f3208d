package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/common/duration"
	"github.com/jamesatjaminit/Jam-Bot/ratelimit"
)

// Dispatch runs a command after checking it can be used in this context, the user's permissions, and its cooldown.
func (bot *Bot) Dispatch(ctx *Context) {
	cmd := ctx.Command
	userID := ctx.Author.ID.String()

	if !ctx.GuildID.IsValid() && !cmd.AllowInDM {
		bot.reply(ctx, "This command can't be used in DMs.")
		return
	}

	owner := bot.IsOwner(ctx.Author.ID)
	if cmd.OwnerOnly && !owner {
		bot.reply(ctx, "This command can only be used by the bot owner.")
		return
	}

	if cmd.Permissions != 0 && !owner && ctx.GuildID.IsValid() {
		perms, err := bot.Perms.Permissions(ctx.ChannelID, ctx.Author.ID)
		if err != nil {
			bot.Log.Errorf("getting permissions for %v in channel %v: %v", ctx.Author.ID, ctx.ChannelID, err)
			bot.reply(ctx, "I couldn't check your permissions, please try again later.")
			return
		}

		if missing := common.MissingPerms(perms, cmd.Permissions); len(missing) > 0 {
			bot.reply(ctx, fmt.Sprintf("You're missing the following permissions: %v", strings.Join(missing, ", ")))
			return
		}
	}

	cooldown := cmd.Cooldown
	if cooldown == 0 {
		cooldown = bot.Config.Bot.Cooldown
	}
	if bot.Limiter.IsRateLimited(ctx, cmd.Name, userID, cooldown) {
		left := ratelimit.RemainingMs(ctx, bot.Limiter, cmd.Name, userID, cooldown)
		bot.reply(ctx, fmt.Sprintf("Please wait %.1f more seconds before using this command again.", float64(left)/1000))
		return
	}
	bot.Limiter.Record(ctx, cmd.Name, userID)

	bot.Stats.IncCommand(cmd.Name)

	err := execute(ctx)
	if err != nil {
		bot.ReportError(ctx, err)
	}
}

func execute(ctx *Context) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = errors.Errorf("panic in command %v: %v\n%s", ctx.Command.Name, r, debug.Stack())
		}
	}()

	return ctx.Command.Execute(ctx)
}

func (bot *Bot) reply(ctx *Context, content string) {
	err := ctx.ReplyEphemeral(content)
	if err != nil {
		bot.Log.Errorf("replying to %v in channel %v: %v", ctx.Author.ID, ctx.ChannelID, err)
	}
}

func (bot *Bot) interactionCreate(ev *gateway.InteractionCreateEvent) {
	data, ok := ev.Data.(*discord.CommandInteraction)
	if !ok {
		return
	}

	cmd, ok := bot.Commands.Get(data.Name)
	if !ok {
		bot.Log.Debugf("unknown command %q in interaction %v", data.Name, ev.ID)
		return
	}

	var author discord.User
	switch {
	case ev.Member != nil:
		author = ev.Member.User
	case ev.User != nil:
		author = *ev.User
	}

	args := make(map[string]string, len(data.Options))
	var attachments []discord.Attachment
	for _, o := range data.Options {
		if o.Type == discord.AttachmentOptionType {
			if sf, err := o.SnowflakeValue(); err == nil {
				if a, ok := data.Resolved.Attachments[discord.AttachmentID(sf)]; ok {
					attachments = append(attachments, a)
				}
			}
			continue
		}
		args[o.Name] = o.String()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bot.Dispatch(&Context{
		Context:     ctx,
		Bot:         bot,
		Command:     cmd,
		Author:      author,
		Member:      ev.Member,
		GuildID:     ev.GuildID,
		ChannelID:   ev.ChannelID,
		Args:        args,
		Attachments: attachments,
		Responder:   &interactionResponder{state: bot.State, ev: &ev.InteractionEvent},
	})
}

func (bot *Bot) messageCreate(ev *gateway.MessageCreateEvent) {
	if ev.Author.Bot || ev.WebhookID.IsValid() {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prefixes := []string{bot.Prefix(ctx, ev.GuildID)}
	if me, err := bot.State.Me(); err == nil {
		prefixes = append(prefixes, me.Mention(), "<@!"+me.ID.String()+">")
	}

	rest, ok := MatchPrefix(ev.Content, prefixes...)
	if !ok {
		return
	}

	name, argString, _ := strings.Cut(rest, " ")
	cmd, ok := bot.Commands.Get(name)
	if !ok {
		return
	}

	bot.Dispatch(&Context{
		Context:     ctx,
		Bot:         bot,
		Command:     cmd,
		Author:      ev.Author,
		Member:      ev.Member,
		GuildID:     ev.GuildID,
		ChannelID:   ev.ChannelID,
		Args:        ParseArgs(cmd.Options, argString),
		Attachments: ev.Attachments,
		Responder:   &messageResponder{state: bot.State, channelID: ev.ChannelID, messageID: ev.ID},
	})
}

// MatchPrefix returns content with the first matching prefix and any following whitespace removed.
func MatchPrefix(content string, prefixes ...string) (string, bool) {
	for _, p := range prefixes {
		if p == "" {
			continue
		}

		if len(content) >= len(p) && strings.EqualFold(content[:len(p)], p) {
			rest := strings.TrimSpace(content[len(p):])
			return rest, rest != ""
		}
	}
	return "", false
}

// ParseArgs maps whitespace-separated arguments to options.
// The last string option takes all text not claimed by other options:
// options before it take one argument each from the start,
// options after it take one argument each from the end if that argument is valid for the option's type.
// Without a string option, every option takes one argument in order.
// Attachment options never take arguments.
func ParseArgs(opts []Option, s string) map[string]string {
	args := make(map[string]string, len(opts))
	fields := strings.Fields(s)

	textOpts := make([]Option, 0, len(opts))
	for _, o := range opts {
		if o.Type != AttachmentOption {
			textOpts = append(textOpts, o)
		}
	}
	opts = textOpts

	greedy := -1
	for i, o := range opts {
		if o.Type == StringOption {
			greedy = i
		}
	}

	if greedy == -1 {
		for i, o := range opts {
			if i >= len(fields) {
				break
			}
			args[o.Name] = fields[i]
		}
		return args
	}

	for i := len(opts) - 1; i > greedy && len(fields) > 0; i-- {
		last := fields[len(fields)-1]
		if !validArg(opts[i], last) {
			continue
		}
		args[opts[i].Name] = last
		fields = fields[:len(fields)-1]
	}

	for _, o := range opts[:greedy] {
		if len(fields) == 0 {
			return args
		}
		args[o.Name] = fields[0]
		fields = fields[1:]
	}

	if len(fields) > 0 {
		args[opts[greedy].Name] = strings.Join(fields, " ")
	}
	return args
}

func validArg(o Option, s string) bool {
	var ok bool
	switch o.Type {
	case IntegerOption:
		_, err := strconv.ParseInt(s, 10, 64)
		ok = err == nil
	case BooleanOption:
		_, ok = parseBool(s)
	case UserOption:
		_, ok = parseMention(s, "@")
	case ChannelOption:
		_, ok = parseMention(s, "#")
	case DurationOption:
		_, err := duration.Parse(s)
		ok = err == nil
	default:
		ok = true
	}
	return ok
}
