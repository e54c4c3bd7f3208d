// Package apis contains clients for the third-party REST APIs used by commands and jobs.
package apis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"emperror.dev/errors"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned when an API has no result for a query.
const ErrNotFound = errors.Sentinel("no result found")

// StatusError is returned when an API responds with a non-200 status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v returned status %v", e.URL, e.Code)
}

// Base URLs
const (
	DictionaryURL = "https://api.dictionaryapi.dev"
	ShortenURL    = "https://is.gd"
	CatURL        = "https://aws.random.cat"
	DogURL        = "https://dog.ceo"
	FoxURL        = "https://randomfox.ca"
	PexelsURL     = "https://api.pexels.com"
	BingURL       = "https://api.bing.microsoft.com"
	HasteURL      = "https://hastebin.com"
)

// Client is an HTTP client for every API except Twitch.
// Outgoing requests are paced by a shared rate limiter.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter

	PexelsKey string
	BingKey   string

	URLs URLs
}

// URLs are the base URLs of each API, overridable for tests or self-hosted instances.
type URLs struct {
	Dictionary string
	Shorten    string
	Cat        string
	Dog        string
	Fox        string
	Pexels     string
	Bing       string
	Haste      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRateLimit sets the number of requests per second and the burst size.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithKeys sets the Pexels and Bing API keys.
func WithKeys(pexels, bing string) Option {
	return func(c *Client) {
		c.PexelsKey = pexels
		c.BingKey = bing
	}
}

// WithHaste sets the hastebin host.
func WithHaste(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.URLs.Haste = url
		}
	}
}

// New returns a new Client.
func New(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(10, 5),

		URLs: URLs{
			Dictionary: DictionaryURL,
			Shorten:    ShortenURL,
			Cat:        CatURL,
			Dog:        DogURL,
			Fox:        FoxURL,
			Pexels:     PexelsURL,
			Bing:       BingURL,
			Haste:      HasteURL,
		},
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends req and decodes a JSON response into v.
func (c *Client) do(req *http.Request, v any) error {
	err := c.limiter.Wait(req.Context())
	if err != nil {
		return errors.Wrap(err, "waiting for rate limiter")
	}

	req.Header.Set("User-Agent", "Jam-Bot (https://github.com/jamesatjaminit/Jam-Bot)")
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "executing request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode, URL: req.URL.Host + req.URL.Path}
	}

	err = json.NewDecoder(resp.Body).Decode(v)
	if err != nil {
		return errors.Wrap(err, "decoding response")
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any, headers ...string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}

	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	return c.do(req, v)
}

// IsStatus returns true if err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
