package bot

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/embed"
)

// ReportError logs an error from a command, reports it to Sentry if configured, and tells the user an error occurred.
// It returns the error code shown to the user.
func (bot *Bot) ReportError(ctx *Context, err error) string {
	var cmd string
	if ctx.Command != nil {
		cmd = ctx.Command.Name
	}
	bot.Log.Errorf("running command %v for user %v in guild %v: %v", cmd, ctx.Author.ID, ctx.GuildID, err)

	var id string
	if bot.Config.Auth.Sentry != "" {
		hub := sentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			if ctx.Author.ID.IsValid() {
				scope.SetUser(sentry.User{ID: ctx.Author.ID.String()})
			}
			scope.SetTag("command", cmd)
			if ctx.GuildID.IsValid() {
				scope.SetTag("guild", ctx.GuildID.String())
			}
		})

		hub.AddBreadcrumb(&sentry.Breadcrumb{
			Data: map[string]any{
				"user":    ctx.Author.ID,
				"channel": ctx.ChannelID,
			},
			Level:     sentry.LevelError,
			Timestamp: time.Now().UTC(),
		}, nil)

		if eventID := hub.CaptureException(err); eventID != nil {
			id = string(*eventID)
		}
	}
	if id == "" {
		id = uuid.New().String()
	}

	e := embed.New("Internal error occurred", common.ColourRed).
		SetDescription(fmt.Sprintf("An internal error has occurred. "+
			"If this issue persists, please contact the developer "+
			"with the error code above.%v", supportLink(bot.Config.Info.SupportServer))).
		SetFooter(id).
		SetTimestamp(time.Now())

	mErr := ctx.ReplyEphemeral(fmt.Sprintf("Error code: ``%v``", id), e)
	if mErr != nil {
		bot.Log.Errorf("sending error message for %v: %v", id, mErr)
	}
	return id
}

func supportLink(url string) string {
	if url == "" {
		return ""
	}
	return fmt.Sprintf("\nSupport server: %v", url)
}
