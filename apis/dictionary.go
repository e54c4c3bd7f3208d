package apis

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Entry is a dictionary entry for a word.
type Entry struct {
	Word     string    `json:"word"`
	Phonetic string    `json:"phonetic"`
	Meanings []Meaning `json:"meanings"`
}

// Meaning is a word's definitions for one part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

// Definition is a single definition.
type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// Meaning returns the meaning for the given part of speech, or the first meaning if it is empty or not found.
func (e Entry) Meaning(partOfSpeech string) (Meaning, bool) {
	if len(e.Meanings) == 0 {
		return Meaning{}, false
	}

	for _, m := range e.Meanings {
		if strings.EqualFold(m.PartOfSpeech, partOfSpeech) {
			return m, true
		}
	}
	return e.Meanings[0], true
}

// PartsOfSpeech returns the parts of speech the entry has definitions for.
func (e Entry) PartsOfSpeech() []string {
	out := make([]string, 0, len(e.Meanings))
	for _, m := range e.Meanings {
		out = append(out, m.PartOfSpeech)
	}
	return out
}

// Define looks up the first English dictionary entry for word.
// ErrNotFound is returned if the word has no entries.
func (c *Client) Define(ctx context.Context, word string) (Entry, error) {
	var entries []Entry
	err := c.getJSON(ctx, c.URLs.Dictionary+"/api/v2/entries/en/"+url.PathEscape(word), &entries)
	if err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}

	if len(entries) == 0 {
		return Entry{}, ErrNotFound
	}
	return entries[0], nil
}
