package apis

import (
	"context"
	"io"
	"net/http"

	"emperror.dev/errors"
)

// ErrTooLarge is returned by Download when a file is larger than the allowed size.
const ErrTooLarge = errors.Sentinel("file too large")

// Download downloads a file of at most maxSize bytes and returns it with its content type.
func (c *Client) Download(ctx context.Context, url string, maxSize int64) ([]byte, string, error) {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return nil, "", errors.Wrap(err, "waiting for rate limiter")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", errors.Wrap(err, "creating request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", errors.Wrap(err, "executing request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &StatusError{Code: resp.StatusCode, URL: req.URL.Host + req.URL.Path}
	}

	if resp.ContentLength > maxSize {
		return nil, "", ErrTooLarge
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return nil, "", errors.Wrap(err, "reading body")
	}
	if int64(len(b)) > maxSize {
		return nil, "", ErrTooLarge
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(b)
	}
	return b, contentType, nil
}
