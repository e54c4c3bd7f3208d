package jobs

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"math/rand"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/jamesatjaminit/Jam-Bot/apis"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/common/duration"
	"github.com/jamesatjaminit/Jam-Bot/embed"
	"github.com/jamesatjaminit/Jam-Bot/settings"
	"go.uber.org/zap"
)

// StreamSource returns a user's live stream, or apis.ErrNotFound if they aren't live.
type StreamSource interface {
	Stream(ctx context.Context, userID string) (apis.Stream, error)
}

// Messenger sends, edits, and crossposts Discord messages.
type Messenger interface {
	Channel(id discord.ChannelID) (*discord.Channel, error)
	SendMessageComplex(channelID discord.ChannelID, data api.SendMessageData) (*discord.Message, error)
	EditMessageComplex(channelID discord.ChannelID, messageID discord.MessageID, data api.EditMessageData) (*discord.Message, error)
	CrosspostMessage(channelID discord.ChannelID, messageID discord.MessageID) (*discord.Message, error)
}

var happyMessages = []string{
	"Woohoo!", "Yay!", "Hooray!", "Guess what?", "Get in here!", "Look!",
}

// Twitch posts a notification when a Twitch user goes live, and edits it when the stream's title or game changes.
// Notification state is stored in the notification channel's guild settings.
type Twitch struct {
	Log      *zap.SugaredLogger
	Streams  StreamSource
	Messages Messenger
	Settings *settings.Store

	UserID      string
	ChannelID   discord.ChannelID
	MentionRole discord.RoleID
	Interval    time.Duration
}

// Check checks whether the user is live and notifies or edits the notification if needed.
func (t *Twitch) Check(ctx context.Context) error {
	stream, err := t.Streams.Stream(ctx, t.UserID)
	if err != nil {
		if errors.Is(err, apis.ErrNotFound) {
			return nil
		}

		var se *apis.StatusError
		if errors.As(err, &se) {
			t.Log.Warnf("Twitch returned status %v, skipping live checks", se.Code)
			return nil
		}
		return errors.Wrap(err, "getting stream")
	}

	ch, err := t.Messages.Channel(t.ChannelID)
	if err != nil {
		return errors.Wrap(err, "getting notification channel")
	}
	if ch.Type != discord.GuildText && ch.Type != discord.GuildAnnouncement {
		return errors.Errorf("notification channel %v isn't a text channel", ch.ID)
	}
	guildID := ch.GuildID.String()

	liveTime := stream.StartedAt.Unix()
	identifier := liveIdentifier(stream)
	e := t.embed(stream)

	v, _ := t.Settings.GetNested(ctx, guildID, settings.NamespaceTwitch, settings.KeyLiveTime)
	if stored, ok := settings.AsInt64(v); !ok || stored != liveTime {
		t.Log.Infof("%v is now live, notifying in %v", stream.UserLogin, ch.ID)
		return t.notify(ctx, ch, guildID, liveTime, identifier, e)
	}

	v, _ = t.Settings.GetNested(ctx, guildID, settings.NamespaceTwitch, settings.KeyLiveIdentifier)
	if stored, _ := settings.AsString(v); stored == identifier {
		return nil
	}

	err = t.Settings.SetNested(ctx, guildID, settings.NamespaceTwitch, settings.KeyLiveIdentifier, identifier)
	if err != nil {
		return errors.Wrap(err, "storing live identifier")
	}

	v, _ = t.Settings.GetNested(ctx, guildID, settings.NamespaceTwitch, settings.KeyLiveMessageID)
	s, _ := settings.AsString(v)
	sf, err := discord.ParseSnowflake(s)
	if err != nil || !sf.IsValid() {
		return nil
	}

	t.Log.Debugf("Stream title or game changed, editing notification %v", sf)

	embeds := embed.Discord(e)
	_, err = t.Messages.EditMessageComplex(ch.ID, discord.MessageID(sf), api.EditMessageData{
		Content: option.NewNullableString(t.content()),
		Embeds:  &embeds,
	})
	return errors.Wrap(err, "editing notification")
}

func (t *Twitch) notify(ctx context.Context, ch *discord.Channel, guildID string, liveTime int64, identifier string, e *embed.Embed) error {
	err := t.Settings.SetNested(ctx, guildID, settings.NamespaceTwitch, settings.KeyLiveTime, liveTime)
	if err != nil {
		return errors.Wrap(err, "storing live time")
	}

	data := api.SendMessageData{
		Content: t.content(),
		Embeds:  embed.Discord(e),
	}
	if t.MentionRole.IsValid() {
		data.AllowedMentions = &api.AllowedMentions{Roles: []discord.RoleID{t.MentionRole}}
	}

	msg, err := t.Messages.SendMessageComplex(ch.ID, data)
	if err != nil {
		return errors.Wrap(err, "sending notification")
	}

	if ch.Type == discord.GuildAnnouncement {
		_, err = t.Messages.CrosspostMessage(ch.ID, msg.ID)
		if err != nil {
			t.Log.Errorf("crossposting notification %v: %v", msg.ID, err)
		}
	}

	err = t.Settings.SetNested(ctx, guildID, settings.NamespaceTwitch, settings.KeyLiveMessageID, msg.ID.String())
	if err != nil {
		return errors.Wrap(err, "storing notification message ID")
	}

	err = t.Settings.SetNested(ctx, guildID, settings.NamespaceTwitch, settings.KeyLiveIdentifier, identifier)
	return errors.Wrap(err, "storing live identifier")
}

func (t *Twitch) content() string {
	if !t.MentionRole.IsValid() {
		return ""
	}
	return t.MentionRole.Mention()
}

func (t *Twitch) embed(s apis.Stream) *embed.Embed {
	title := common.OrDefault(s.Title, "N/A")
	game := common.OrDefault(s.GameName, "N/A")

	e := embed.New(fmt.Sprintf("%v %v is live streaming!", happyMessages[rand.Intn(len(happyMessages))], s.UserLogin), common.ColourTwitch).
		SetDescription(title).
		AddField("Playing", game, true).
		AddField("Started", fmt.Sprintf("<t:%v:R>", s.StartedAt.Unix()), true).
		SetImage(s.ThumbnailURL())
	e.URL = "https://twitch.tv/" + s.UserLogin

	if t.Interval > 0 {
		e.SetFooter("Updates every " + duration.Format(t.Interval) + ".")
	}
	return e
}

// liveIdentifier identifies a stream's title and game, so changes to either can be detected.
func liveIdentifier(s apis.Stream) string {
	h := sha1.Sum([]byte(common.OrDefault(s.Title, "N/A") + common.OrDefault(s.GameName, "N/A")))
	return hex.EncodeToString(h[:])
}
