package apis

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"emperror.dev/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Twitch endpoints
const (
	TwitchURL      = "https://api.twitch.tv"
	TwitchTokenURL = "https://id.twitch.tv/oauth2/token"
)

// Stream is a live stream.
type Stream struct {
	UserID    string    `json:"user_id"`
	UserLogin string    `json:"user_login"`
	UserName  string    `json:"user_name"`
	GameName  string    `json:"game_name"`
	Title     string    `json:"title"`
	StartedAt time.Time `json:"started_at"`
}

// ThumbnailURL returns the stream preview image.
func (s Stream) ThumbnailURL() string {
	return "https://static-cdn.jtvnw.net/previews-ttv/live_user_" + s.UserLogin + "-440x248.jpg"
}

// Twitch is a Twitch helix client authenticated with an app access token.
type Twitch struct {
	client   *Client
	clientID string
	base     string
}

// NewTwitch returns a Twitch client. App access tokens are fetched and refreshed
// with the client credentials flow.
func NewTwitch(ctx context.Context, clientID, clientSecret string) *Twitch {
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     TwitchTokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	hc := cfg.Client(ctx)
	hc.Timeout = 10 * time.Second

	return newTwitch(hc, clientID, TwitchURL)
}

func newTwitch(hc *http.Client, clientID, base string) *Twitch {
	return &Twitch{
		client:   New(WithHTTPClient(hc)),
		clientID: clientID,
		base:     base,
	}
}

// Stream returns the live stream for the given user ID. ErrNotFound is returned if the user isn't live.
func (t *Twitch) Stream(ctx context.Context, userID string) (Stream, error) {
	var resp struct {
		Data []Stream `json:"data"`
	}

	u := t.base + "/helix/streams?" + url.Values{"user_id": {userID}}.Encode()

	err := t.client.getJSON(ctx, u, &resp, "Client-Id", t.clientID)
	if err != nil {
		return Stream{}, errors.Wrap(err, "getting stream")
	}

	if len(resp.Data) == 0 {
		return Stream{}, ErrNotFound
	}
	return resp.Data[0], nil
}
