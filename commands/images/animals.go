package images

import (
	"net/http"
	"strings"

	"emperror.dev/errors"
	"github.com/jamesatjaminit/Jam-Bot/apis"
	"github.com/jamesatjaminit/Jam-Bot/bot"
)

const apiErrors = "The API seems to be returning errors, please try again later"

// imageReply returns the reply for an image lookup: the image itself, or a fallback message.
func imageReply(img string, err error, fallback string) string {
	switch {
	case err == nil && img != "":
		return img
	case err == nil, errors.Is(err, apis.ErrNotFound):
		return fallback
	}

	var se *apis.StatusError
	if errors.As(err, &se) {
		return apiErrors
	}
	return fallback
}

func (bot *Bot) logError(what string, err error) {
	if err == nil || errors.Is(err, apis.ErrNotFound) {
		return
	}
	bot.log.Errorf("getting %v: %v", what, err)
}

func (bot *Bot) cat(ctx *bot.Context) error {
	err := ctx.Defer()
	if err != nil {
		return err
	}

	img, err := bot.APIs.Cat(ctx)
	bot.logError("cat", err)
	return ctx.Reply(imageReply(img, err, "Unable to get a kitty cat, the api's probably down"))
}

func (bot *Bot) dog(ctx *bot.Context) error {
	breed := strings.ToLower(ctx.String("breed"))
	sub := strings.ToLower(ctx.String("sub"))

	img, err := bot.APIs.Dog(ctx, breed, sub)
	if apis.IsStatus(err, http.StatusNotFound) {
		return ctx.Reply("I couldn't find that breed of dog.")
	}
	bot.logError("dog", err)
	return ctx.Reply(imageReply(img, err, "Unable to get a doggy, the api's probably down"))
}

func (bot *Bot) fox(ctx *bot.Context) error {
	img, err := bot.APIs.Fox(ctx)
	bot.logError("fox", err)
	return ctx.Reply(imageReply(img, err, "Unable to get a cute fox, the api's probably down :c"))
}
