package jobs

import (
	"context"
	"fmt"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/jamesatjaminit/Jam-Bot/bot"
)

// updateStatus sets the bot's status to its help command and server count.
func updateStatus(b *bot.Bot) Func {
	return func(ctx context.Context) error {
		guilds, err := b.State.Cabinet.Guilds()
		if err != nil {
			return errors.Wrap(err, "getting guilds")
		}

		err = b.State.Gateway().Send(ctx, &gateway.UpdatePresenceCommand{
			Status: discord.OnlineStatus,
			Activities: []discord.Activity{{
				Name: statusText(b.Config.Bot.Prefix, len(guilds)),
				Type: discord.GameActivity,
			}},
		})
		return errors.Wrap(err, "updating presence")
	}
}

func statusText(prefix string, guilds int) string {
	s := prefix + "help"
	if guilds != 0 {
		s += fmt.Sprintf(" | in %v servers", guilds)
	}
	return s
}
