// Package images has commands that post images: random animals, melons, stock photos and image search.
package images

import (
	"math/rand"

	"github.com/jamesatjaminit/Jam-Bot/bot"
	"go.uber.org/zap"
)

type Bot struct {
	*bot.Bot

	log  *zap.SugaredLogger
	intn func(n int) int
}

func Setup(root *bot.Bot) {
	b := &Bot{
		Bot:  root,
		log:  root.Log.Named("images"),
		intn: rand.Intn,
	}
	b.log.Debug("Adding image commands")

	root.Commands.Add(
		&bot.Command{
			Name:        "cat",
			Description: "Purrrr",
			AllowInDM:   true,
			Execute:     b.cat,
		},
		&bot.Command{
			Name:        "dog",
			Description: "Woof",
			AllowInDM:   true,
			Options: []bot.Option{
				{Name: "breed", Description: "The breed of dog"},
				{Name: "sub", Description: "The sub-breed of dog"},
			},
			Execute: b.dog,
		},
		&bot.Command{
			Name:        "fox",
			Description: "Fox",
			AllowInDM:   true,
			Execute:     b.fox,
		},
		&bot.Command{
			Name:        "melon",
			Description: "Posts a random watermelon",
			AllowInDM:   true,
			Execute:     b.melon,
		},
		&bot.Command{
			Name:        "stock",
			Description: "Gets a stock image",
			Options: []bot.Option{
				{Name: "search", Description: "The text to search for", Required: true},
				{Name: "position", Description: "The specific position to get", Type: bot.IntegerOption},
			},
			Execute: b.stock,
		},
		&bot.Command{
			Name:        "image",
			Description: "Searches for an image",
			Options: []bot.Option{
				{Name: "search", Description: "The text to search for", Required: true},
				{Name: "position", Description: "The specific position to get", Type: bot.IntegerOption},
			},
			Execute: b.image,
		},
	)
}
