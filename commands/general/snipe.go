package general

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
	"github.com/jamesatjaminit/Jam-Bot/snipe"
)

// maxSnipes is the number of snipes shown, leaving room for the overflow field.
const maxSnipes = common.MaxEmbedFields - 1

// snipeBudget is the embed length available for snipe fields, leaving room for the overflow field and footer.
const snipeBudget = common.MaxEmbedLength - 250

func (bot *Bot) snipe(ctx *bot.Context) error {
	t, ok := parseSnipeType(ctx.String("type"))
	if !ok {
		return ctx.ReplyEphemeral("Type has to be either `deletes` or `edits`")
	}

	snipes := bot.Snipes.Query(ctx.ChannelID.String(), t)

	e := snipeEmbed(snipes, t, bot.Snipes.Lifetime(), time.Now())
	e.SetFooter("Sniped by " + ctx.Author.Tag())
	return ctx.Reply("", e)
}

// parseSnipeType accepts "delete", "edit", and their plurals. An empty string matches all snipes.
func parseSnipeType(s string) (snipe.Type, bool) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")

	switch s {
	case "":
		return "", true
	case string(snipe.Delete):
		return snipe.Delete, true
	case string(snipe.Edit):
		return snipe.Edit, true
	}
	return "", false
}

func snipeEmbed(snipes []snipe.Message, t snipe.Type, lifetime time.Duration, now time.Time) *embed.Embed {
	verb := "edited/deleted"
	switch t {
	case snipe.Delete:
		verb = "deleted"
	case snipe.Edit:
		verb = "edited"
	}
	seconds := int(lifetime.Seconds())

	e := embed.New(fmt.Sprintf("Messages %v in the last %d seconds", verb, seconds), common.ColourBlue).
		SetTimestamp(now)

	if len(snipes) == 0 {
		return e.SetDescription(fmt.Sprintf("No edits/deletes in the last %d seconds", seconds))
	}

	for _, s := range snipes {
		var name, value string
		switch s.Type {
		case snipe.Delete:
			name, value = "Message deleted by "+s.AuthorTag, common.OrDefault(s.Content, "*No content*")
		case snipe.Edit:
			name, value = "Message edited by "+s.AuthorTag, fmt.Sprintf("**Before:** %v\n**After:** %v", s.OldContent, s.Content)
		default:
			continue
		}
		value = common.Truncate(value, common.MaxFieldValueLength)

		if len(e.Fields) == maxSnipes || e.Length()+utf8.RuneCountInString(name+value) > snipeBudget {
			e.AddField("Too many messages have been edited/deleted", fmt.Sprintf("Only showing the latest %d edits/deletes", len(e.Fields)), false)
			break
		}
		e.AddField(name, value, false)
	}
	return e
}
