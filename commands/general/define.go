package general

import (
	"context"
	"fmt"
	"strings"

	"emperror.dev/errors"
	"github.com/jamesatjaminit/Jam-Bot/apis"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
)

const definitionsPerPage = 5

// notFound is cached for words with no definitions.
type notFound struct{}

func (bot *Bot) define(ctx *bot.Context) error {
	word := strings.ToLower(strings.TrimSpace(ctx.String("word")))
	if word == "" {
		return ctx.ReplyEphemeral("You need to give a word to define.")
	}

	err := ctx.Defer()
	if err != nil {
		return err
	}

	entry, err := bot.lookup(ctx, word)
	if err != nil {
		if errors.Is(err, apis.ErrNotFound) {
			return ctx.Reply("", embed.New("", common.ColourRed).SetDescription("No definitions found for: "+word))
		}

		bot.log.Errorf("looking up definition for %q: %v", word, err)
		return ctx.Reply("I couldn't reach the dictionary right now, please try again later.")
	}

	return ctx.Reply("", definitionEmbed(entry, ctx.String("type"), int(ctx.Int("page", 1))))
}

// lookup returns a dictionary entry, cached for a day. Words without definitions are cached too.
func (bot *Bot) lookup(ctx context.Context, word string) (apis.Entry, error) {
	if v, err := bot.definitions.Get(word); err == nil {
		switch v := v.(type) {
		case apis.Entry:
			return v, nil
		case notFound:
			return apis.Entry{}, apis.ErrNotFound
		}
	}

	entry, err := bot.APIs.Define(ctx, word)
	if err != nil {
		if errors.Is(err, apis.ErrNotFound) {
			_ = bot.definitions.Set(word, notFound{})
		}
		return entry, err
	}

	_ = bot.definitions.Set(word, entry)
	return entry, nil
}

// definitionEmbed shows one page of definitions for a part of speech. page is 1-indexed.
func definitionEmbed(entry apis.Entry, partOfSpeech string, page int) *embed.Embed {
	meaning, ok := entry.Meaning(partOfSpeech)
	if !ok {
		return embed.New("", common.ColourRed).SetDescription("No definitions found for: " + entry.Word)
	}

	defs, current, total := common.Page(meaning.Definitions, page-1, definitionsPerPage)

	e := embed.New(fmt.Sprintf("%v: %v", capitalise(meaning.PartOfSpeech), capitalise(entry.Word)), common.ColourBlue)
	for i, d := range defs {
		n := current*definitionsPerPage + i + 1
		value := capitalise(common.OrDefault(d.Definition, "*Not available*"))
		if d.Example != "" {
			value += "\n> " + d.Example
		}
		e.AddField(fmt.Sprintf("Definition #%d", n), value, false)
	}

	footer := fmt.Sprintf("Page %d/%d", current+1, total)
	if parts := entry.PartsOfSpeech(); len(parts) > 1 {
		footer += " • Types: " + strings.Join(parts, ", ")
	}
	e.SetFooter(footer)
	return e
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
