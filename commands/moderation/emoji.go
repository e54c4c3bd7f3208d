package moderation

import (
	"fmt"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/jamesatjaminit/Jam-Bot/apis"
	"github.com/jamesatjaminit/Jam-Bot/bot"
)

// maxEmojiSize is Discord's upload limit for emojis.
const maxEmojiSize = 256 * 1000

func (bot *Bot) addEmoji(ctx *bot.Context) error {
	name := ctx.String("name")
	if msg := checkEmojiName(name); msg != "" {
		return ctx.ReplyEphemeral(msg)
	}

	a, ok := ctx.Attachment()
	if !ok {
		return ctx.ReplyEphemeral("Attach an image to use for the emoji.")
	}
	if a.Size > maxEmojiSize {
		return ctx.ReplyEphemeral("That image is too big, emojis can be at most 256 KB.")
	}

	err := ctx.Defer()
	if err != nil {
		return err
	}

	content, contentType, err := bot.APIs.Download(ctx, a.URL, maxEmojiSize)
	if err != nil {
		if errors.Is(err, apis.ErrTooLarge) {
			return ctx.ReplyEphemeral("That image is too big, emojis can be at most 256 KB.")
		}
		return errors.Wrap(err, "downloading emoji")
	}
	contentType, ok = emojiContentType(contentType)
	if !ok {
		return ctx.ReplyEphemeral("Emojis have to be a PNG, JPEG, or GIF image.")
	}

	emoji, err := bot.State.CreateEmoji(ctx.GuildID, api.CreateEmojiData{
		Name:           name,
		Image:          api.Image{ContentType: contentType, Content: content},
		AuditLogReason: auditReason(ctx.Author, "add emoji", name),
	})
	if err != nil {
		if isForbidden(err) {
			return ctx.ReplyEphemeral("I don't have permission to add emojis!")
		}
		return err
	}

	bot.log.Debugf("Created emoji %v (%v) in %v", emoji.Name, emoji.ID, ctx.GuildID)
	return ctx.Reply(fmt.Sprintf("Created new emoji with name %v!", emoji.Name))
}

// checkEmojiName returns why name can't be used as an emoji name, or an empty string if it can.
func checkEmojiName(name string) string {
	if name == "" {
		return "Make sure you name your emoji!"
	}
	if len(name) < 2 || len(name) > 32 {
		return "Emoji names have to be between 2 and 32 characters long."
	}

	for _, r := range name {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return "Emoji names can only contain letters, numbers, and underscores."
		}
	}
	return ""
}

// emojiContentType strips any parameters from ct and reports whether Discord accepts it for emojis.
func emojiContentType(ct string) (string, bool) {
	ct, _, _ = strings.Cut(ct, ";")
	ct = strings.ToLower(strings.TrimSpace(ct))
	switch ct {
	case "image/png", "image/jpeg", "image/gif":
		return ct, true
	}
	return ct, false
}
