package images

import (
	"context"
	"fmt"

	"emperror.dev/errors"
	"github.com/jamesatjaminit/Jam-Bot/apis"
	"github.com/jamesatjaminit/Jam-Bot/bot"
)

type searchFunc func(ctx context.Context, query string, position int) (string, error)

func (bot *Bot) stock(ctx *bot.Context) error {
	return bot.search(ctx, "stock photo", bot.APIs.Stock)
}

func (bot *Bot) image(ctx *bot.Context) error {
	return bot.search(ctx, "image", bot.APIs.Image)
}

// maxMelon is how many watermelon search results melon picks from.
const maxMelon = 25

func (bot *Bot) melon(ctx *bot.Context) error {
	return bot.runSearch(ctx, "melon", "watermelon", bot.intn(maxMelon)+1, bot.APIs.Image)
}

func (bot *Bot) search(ctx *bot.Context, what string, fn searchFunc) error {
	query := ctx.String("search")
	if query == "" {
		return ctx.ReplyEphemeral("You need to specify what to search for!")
	}
	return bot.runSearch(ctx, what, query, int(ctx.Int("position", 1)), fn)
}

func (bot *Bot) runSearch(ctx *bot.Context, what, query string, position int, fn searchFunc) error {
	err := ctx.Defer()
	if err != nil {
		return err
	}

	img, err := fn(ctx, query, position)
	if err != nil {
		bot.logError(what, err)
	}
	return ctx.Reply(searchReply(what, img, position, err))
}

func searchReply(what, img string, position int, err error) string {
	switch {
	case err == nil:
		return img
	case errors.Is(err, apis.ErrNoKey):
		return fmt.Sprintf("Searching for %vs isn't configured on this bot.", what)
	case errors.Is(err, apis.ErrPosition):
		return fmt.Sprintf("There isn't a %v for position: %v", what, position)
	case errors.Is(err, apis.ErrNotFound):
		return fmt.Sprintf("No %v found for your search", what)
	}
	return imageReply("", err, fmt.Sprintf("Unable to get a %v, the api's probably down", what))
}
