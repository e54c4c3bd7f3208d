// Package embed is the bot's display model for rich messages.
// Commands and listeners build an Embed; it is only turned into a discord.Embed when sent.
package embed

import (
	"time"
	"unicode/utf8"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/jamesatjaminit/Jam-Bot/common"
)

// Field is a single embed field.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is a rich message.
type Embed struct {
	Title       string
	URL         string
	Description string
	Colour      discord.Color
	Fields      []Field
	Image       string
	Thumbnail   string
	Author      string
	AuthorIcon  string
	Footer      string
	Timestamp   time.Time
}

// New returns an Embed with the given title and colour.
func New(title string, colour discord.Color) *Embed {
	return &Embed{Title: title, Colour: colour}
}

// AddField appends a field. Empty names and values are replaced with a zero-width space,
// as Discord rejects empty fields.
func (e *Embed) AddField(name, value string, inline bool) *Embed {
	e.Fields = append(e.Fields, Field{
		Name:   common.OrDefault(name, "\u200b"),
		Value:  common.Truncate(common.OrDefault(value, "\u200b"), common.MaxFieldValueLength),
		Inline: inline,
	})
	return e
}

// SetDescription sets the description.
func (e *Embed) SetDescription(s string) *Embed {
	e.Description = s
	return e
}

// SetImage sets the image URL.
func (e *Embed) SetImage(url string) *Embed {
	e.Image = url
	return e
}

// SetFooter sets the footer text.
func (e *Embed) SetFooter(s string) *Embed {
	e.Footer = s
	return e
}

// SetAuthor sets the author name and icon.
func (e *Embed) SetAuthor(name, icon string) *Embed {
	e.Author = name
	e.AuthorIcon = icon
	return e
}

// SetTimestamp sets the timestamp.
func (e *Embed) SetTimestamp(t time.Time) *Embed {
	e.Timestamp = t
	return e
}

// Length returns the number of characters Discord counts towards an embed's total length limit.
func (e *Embed) Length() int {
	n := utf8.RuneCountInString(e.Title) +
		utf8.RuneCountInString(e.Description) +
		utf8.RuneCountInString(e.Footer) +
		utf8.RuneCountInString(e.Author)
	for _, f := range e.Fields {
		n += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
	}
	return n
}

// Discord converts the embed to arikawa's type.
func (e *Embed) Discord() discord.Embed {
	out := discord.Embed{
		Title:       e.Title,
		URL:         e.URL,
		Description: common.Truncate(e.Description, common.MaxDescription),
		Color:       e.Colour,
	}

	if !e.Timestamp.IsZero() {
		out.Timestamp = discord.NewTimestamp(e.Timestamp)
	}
	if e.Image != "" {
		out.Image = &discord.EmbedImage{URL: e.Image}
	}
	if e.Thumbnail != "" {
		out.Thumbnail = &discord.EmbedThumbnail{URL: e.Thumbnail}
	}
	if e.Author != "" {
		out.Author = &discord.EmbedAuthor{Name: e.Author, Icon: e.AuthorIcon}
	}
	if e.Footer != "" {
		out.Footer = &discord.EmbedFooter{Text: e.Footer}
	}

	fields := e.Fields
	if len(fields) > common.MaxEmbedFields {
		fields = fields[:common.MaxEmbedFields]
	}
	for _, f := range fields {
		out.Fields = append(out.Fields, discord.EmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	return out
}

// Discord converts a list of embeds.
func Discord(embeds ...*Embed) []discord.Embed {
	out := make([]discord.Embed, 0, len(embeds))
	for _, e := range embeds {
		if e != nil {
			out = append(out, e.Discord())
		}
	}
	return out
}
