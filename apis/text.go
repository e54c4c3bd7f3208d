package apis

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"emperror.dev/errors"
)

// ShortenError is an error message returned by is.gd.
type ShortenError struct {
	Message string
}

func (e *ShortenError) Error() string {
	return e.Message
}

// Shorten shortens a URL with is.gd.
// If is.gd rejects the URL, a *ShortenError with its message is returned.
func (c *Client) Shorten(ctx context.Context, link string) (string, error) {
	var resp struct {
		ShortURL     string `json:"shorturl"`
		ErrorMessage string `json:"errormessage"`
	}

	u := c.URLs.Shorten + "/create.php?" + url.Values{
		"format": {"json"},
		"url":    {link},
	}.Encode()

	err := c.getJSON(ctx, u, &resp)
	if err != nil {
		return "", err
	}

	if resp.ShortURL == "" {
		if resp.ErrorMessage != "" {
			return "", &ShortenError{Message: resp.ErrorMessage}
		}
		return "", ErrNotFound
	}
	return resp.ShortURL, nil
}

// Haste uploads text to hastebin and returns the paste's URL.
func (c *Client) Haste(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", errors.New("no content to upload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URLs.Haste+"/documents", strings.NewReader(text))
	if err != nil {
		return "", errors.Wrap(err, "creating request")
	}
	req.Header.Set("Content-Type", "text/plain")

	var resp struct {
		Key string `json:"key"`
	}

	err = c.do(req, &resp)
	if err != nil {
		return "", err
	}
	if resp.Key == "" {
		return "", ErrNotFound
	}
	return c.URLs.Haste + "/" + resp.Key, nil
}
