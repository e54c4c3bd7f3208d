package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/jamesatjaminit/Jam-Bot/common/duration"
	"github.com/jamesatjaminit/Jam-Bot/embed"
)

// Response is a reply to a command.
type Response struct {
	Content   string
	Embeds    []*embed.Embed
	Ephemeral bool
}

// Responder sends replies for a single invocation.
type Responder interface {
	Reply(Response) error
	Defer() error
}

// Context is a single command invocation, either a slash command or a prefix command.
type Context struct {
	context.Context

	Bot     *Bot
	Command *Command

	Author    discord.User
	Member    *discord.Member
	GuildID   discord.GuildID
	ChannelID discord.ChannelID

	// Args are the invocation's option values, keyed by option name.
	Args map[string]string

	// Attachments are the message's attachments, or the attachment options of a slash command.
	Attachments []discord.Attachment

	Responder Responder
}

// String returns the value of a string option, or an empty string.
func (ctx *Context) String(name string) string {
	return ctx.Args[name]
}

// Has returns true if an option was given.
func (ctx *Context) Has(name string) bool {
	v, ok := ctx.Args[name]
	return ok && v != ""
}

// Int returns the value of an integer option, or def if it isn't set or isn't a number.
func (ctx *Context) Int(name string, def int64) int64 {
	i, err := strconv.ParseInt(ctx.Args[name], 10, 64)
	if err != nil {
		return def
	}
	return i
}

// Bool returns the value of a boolean option.
func (ctx *Context) Bool(name string) (v, ok bool) {
	return parseBool(ctx.Args[name])
}

// User returns the value of a user option.
func (ctx *Context) User(name string) (discord.UserID, bool) {
	sf, ok := parseMention(ctx.Args[name], "@")
	return discord.UserID(sf), ok
}

// Channel returns the value of a channel option.
func (ctx *Context) Channel(name string) (discord.ChannelID, bool) {
	sf, ok := parseMention(ctx.Args[name], "#")
	return discord.ChannelID(sf), ok
}

// Duration returns the value of a duration option.
func (ctx *Context) Duration(name string) (time.Duration, bool) {
	d, err := duration.Parse(ctx.Args[name])
	return d, err == nil
}

// Attachment returns the first attachment.
func (ctx *Context) Attachment() (discord.Attachment, bool) {
	if len(ctx.Attachments) == 0 {
		return discord.Attachment{}, false
	}
	return ctx.Attachments[0], true
}

func parseBool(s string) (v, ok bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "enable", "1":
		return true, true
	case "false", "no", "off", "disable", "0":
		return false, true
	}
	return false, false
}

// parseMention parses an ID or a mention of the given kind ("@" for users, "#" for channels).
func parseMention(s, kind string) (discord.Snowflake, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<"+kind) && strings.HasSuffix(s, ">") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "<"+kind), ">")
		s = strings.TrimPrefix(s, "!")
	}

	sf, err := discord.ParseSnowflake(s)
	if err != nil || !sf.IsValid() {
		return 0, false
	}
	return sf, true
}

// Reply sends a visible reply.
func (ctx *Context) Reply(content string, embeds ...*embed.Embed) error {
	return ctx.Responder.Reply(Response{Content: content, Embeds: embeds})
}

// ReplyEphemeral sends a reply only the invoking user can see. Prefix commands reply normally.
func (ctx *Context) ReplyEphemeral(content string, embeds ...*embed.Embed) error {
	return ctx.Responder.Reply(Response{Content: content, Embeds: embeds, Ephemeral: true})
}

// Defer acknowledges a command that will take a while to respond.
func (ctx *Context) Defer() error {
	return ctx.Responder.Defer()
}

// State returns the bot's state.
func (ctx *Context) State() *state.State {
	return ctx.Bot.State
}

// interactionResponder replies to a slash command.
type interactionResponder struct {
	state *state.State
	ev    *discord.InteractionEvent

	deferred  bool
	responded bool
}

func (r *interactionResponder) Reply(resp Response) error {
	data := api.InteractionResponseData{}
	if resp.Content != "" {
		data.Content = option.NewNullableString(resp.Content)
	}
	if len(resp.Embeds) > 0 {
		data.Embeds = embedsPtr(resp.Embeds)
	}
	if resp.Ephemeral {
		data.Flags = discord.EphemeralMessage
	}

	switch {
	case r.responded:
		_, err := r.state.FollowUpInteraction(r.ev.AppID, r.ev.Token, data)
		return errors.Wrap(err, "sending follow-up")
	case r.deferred:
		r.responded = true
		_, err := r.state.EditInteractionResponse(r.ev.AppID, r.ev.Token, api.EditInteractionResponseData{
			Content: data.Content,
			Embeds:  data.Embeds,
		})
		return errors.Wrap(err, "editing deferred response")
	}

	r.responded = true
	err := r.state.RespondInteraction(r.ev.ID, r.ev.Token, api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &data,
	})
	return errors.Wrap(err, "responding to interaction")
}

func (r *interactionResponder) Defer() error {
	if r.deferred || r.responded {
		return nil
	}
	r.deferred = true

	err := r.state.RespondInteraction(r.ev.ID, r.ev.Token, api.InteractionResponse{
		Type: api.DeferredMessageInteractionWithSource,
	})
	return errors.Wrap(err, "deferring interaction")
}

// messageResponder replies to a prefix command.
type messageResponder struct {
	state     *state.State
	channelID discord.ChannelID
	messageID discord.MessageID
}

func (r *messageResponder) Reply(resp Response) error {
	_, err := r.state.SendMessageComplex(r.channelID, api.SendMessageData{
		Content:         resp.Content,
		Embeds:          embed.Discord(resp.Embeds...),
		Reference:       &discord.MessageReference{MessageID: r.messageID},
		AllowedMentions: &api.AllowedMentions{},
	})
	return errors.Wrap(err, "sending message")
}

func (r *messageResponder) Defer() error {
	return errors.Wrap(r.state.Typing(r.channelID), "triggering typing")
}

func embedsPtr(embeds []*embed.Embed) *[]discord.Embed {
	e := embed.Discord(embeds...)
	return &e
}
