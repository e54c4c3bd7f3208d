package apis

import (
	"context"
	"net/url"
	"strconv"

	"emperror.dev/errors"
)

// ErrNoKey is returned when an API that needs a key isn't configured.
const ErrNoKey = errors.Sentinel("api key not configured")

// ErrPosition is returned when a search has no result at the requested position.
const ErrPosition = errors.Sentinel("no result at that position")

// Cat returns a random cat image.
func (c *Client) Cat(ctx context.Context) (string, error) {
	var resp struct {
		File string `json:"file"`
	}

	err := c.getJSON(ctx, c.URLs.Cat+"/meow", &resp)
	if err != nil {
		return "", err
	}
	if resp.File == "" {
		return "", ErrNotFound
	}
	return resp.File, nil
}

// Dog returns a random dog image, optionally of a breed and sub-breed.
func (c *Client) Dog(ctx context.Context, breed, subBreed string) (string, error) {
	path := "/api/breeds/image/random"
	if breed != "" {
		path = "/api/breed/" + url.PathEscape(breed)
		if subBreed != "" {
			path += "/" + url.PathEscape(subBreed)
		}
		path += "/images/random"
	}

	var resp struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	}

	err := c.getJSON(ctx, c.URLs.Dog+path, &resp)
	if err != nil {
		return "", err
	}
	if resp.Status != "success" || resp.Message == "" {
		return "", ErrNotFound
	}
	return resp.Message, nil
}

// Fox returns a random fox image.
func (c *Client) Fox(ctx context.Context) (string, error) {
	var resp struct {
		Image string `json:"image"`
	}

	err := c.getJSON(ctx, c.URLs.Fox+"/floof/", &resp)
	if err != nil {
		return "", err
	}
	if resp.Image == "" {
		return "", ErrNotFound
	}
	return resp.Image, nil
}

// Stock returns the stock photo at position (1-indexed) for a Pexels search.
func (c *Client) Stock(ctx context.Context, query string, position int) (string, error) {
	if c.PexelsKey == "" {
		return "", ErrNoKey
	}

	var resp struct {
		Photos []struct {
			Src struct {
				Medium string `json:"medium"`
			} `json:"src"`
		} `json:"photos"`
	}

	u := c.URLs.Pexels + "/v1/search?" + url.Values{
		"query":    {query},
		"per_page": {"100"},
	}.Encode()

	err := c.getJSON(ctx, u, &resp, "Authorization", c.PexelsKey)
	if err != nil {
		return "", err
	}

	if len(resp.Photos) == 0 {
		return "", ErrNotFound
	}
	if position < 1 || position > len(resp.Photos) {
		return "", ErrPosition
	}

	img := resp.Photos[position-1].Src.Medium
	if img == "" {
		return "", ErrNotFound
	}
	return img, nil
}

// Image returns the image at position (1-indexed) for a Bing image search, with strict safe search.
func (c *Client) Image(ctx context.Context, query string, position int) (string, error) {
	if c.BingKey == "" {
		return "", ErrNoKey
	}

	var resp struct {
		Value []struct {
			ContentURL string `json:"contentUrl"`
		} `json:"value"`
	}

	u := c.URLs.Bing + "/v7.0/images/search?" + url.Values{
		"q":          {query},
		"safeSearch": {"Strict"},
		"count":      {strconv.Itoa(50)},
	}.Encode()

	err := c.getJSON(ctx, u, &resp, "Ocp-Apim-Subscription-Key", c.BingKey)
	if err != nil {
		return "", err
	}

	if len(resp.Value) == 0 {
		return "", ErrNotFound
	}
	if position < 1 || position > len(resp.Value) {
		return "", ErrPosition
	}
	return resp.Value[position-1].ContentURL, nil
}
