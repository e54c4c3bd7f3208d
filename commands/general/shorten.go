package general

import (
	"emperror.dev/errors"
	"github.com/jamesatjaminit/Jam-Bot/apis"
	"github.com/jamesatjaminit/Jam-Bot/bot"
)

func (bot *Bot) shorten(ctx *bot.Context) error {
	link := ctx.String("url")
	if link == "" {
		return ctx.ReplyEphemeral("You need to give a link to shorten.")
	}

	short, err := bot.APIs.Shorten(ctx, link)
	if err != nil {
		var se *apis.ShortenError
		if errors.As(err, &se) {
			return ctx.ReplyEphemeral(se.Message)
		}

		bot.log.Errorf("shortening %q: %v", link, err)
		return ctx.ReplyEphemeral("An error occurred while shortening that link.")
	}

	return ctx.Reply("<" + short + ">")
}
