package general

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/jamesatjaminit/Jam-Bot/apis"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/snipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeResponder struct {
	replies []bot.Response
}

func (r *fakeResponder) Reply(resp bot.Response) error {
	r.replies = append(r.replies, resp)
	return nil
}

func (r *fakeResponder) Defer() error { return nil }

func testModule(t *testing.T, api *apis.Client) *Bot {
	t.Helper()

	root := &bot.Bot{
		Log:    zap.NewNop().Sugar(),
		Snipes: snipe.New(snipe.DefaultLifetime, snipe.WithOwners("1")),
		APIs:   api,
	}
	b := New(root)
	t.Cleanup(func() { _ = b.definitions.Close() })
	return b
}

func testContext(args map[string]string) (*bot.Context, *fakeResponder) {
	r := &fakeResponder{}
	return &bot.Context{
		Context:   context.Background(),
		Author:    discord.User{ID: 2, Username: "user", Discriminator: "0002"},
		GuildID:   10,
		ChannelID: 20,
		Args:      args,
		Responder: r,
	}, r
}

func TestParseSnipeType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in  string
		out snipe.Type
		ok  bool
	}{
		{"", "", true},
		{"deletes", snipe.Delete, true},
		{"delete", snipe.Delete, true},
		{"EDITS", snipe.Edit, true},
		{"edit", snipe.Edit, true},
		{"messages", "", false},
	}

	for _, test := range tests {
		out, ok := parseSnipeType(test.in)
		assert.Equal(t, test.ok, ok, test.in)
		assert.Equal(t, test.out, out, test.in)
	}
}

func TestSnipeEmbed(t *testing.T) {
	t.Parallel()

	now := time.Now()

	e := snipeEmbed(nil, "", 120*time.Second, now)
	assert.Equal(t, "Messages edited/deleted in the last 120 seconds", e.Title)
	assert.Equal(t, "No edits/deletes in the last 120 seconds", e.Description)
	assert.Empty(t, e.Fields)

	e = snipeEmbed([]snipe.Message{
		{Type: snipe.Edit, AuthorTag: "a#0001", OldContent: "old", Content: "new"},
		{Type: snipe.Delete, AuthorTag: "b#0002", Content: "gone"},
	}, "", time.Minute, now)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "Message edited by a#0001", e.Fields[0].Name)
	assert.Equal(t, "**Before:** old\n**After:** new", e.Fields[0].Value)
	assert.Equal(t, "Message deleted by b#0002", e.Fields[1].Name)

	e = snipeEmbed(nil, snipe.Delete, time.Minute, now)
	assert.Equal(t, "Messages deleted in the last 60 seconds", e.Title)

	many := make([]snipe.Message, 30)
	for i := range many {
		many[i] = snipe.Message{Type: snipe.Delete, AuthorTag: fmt.Sprint(i), Content: "x"}
	}
	e = snipeEmbed(many, "", time.Minute, now)
	require.Len(t, e.Fields, 25)
	assert.Equal(t, "Message deleted by 0", e.Fields[0].Name)
	assert.Equal(t, "Too many messages have been edited/deleted", e.Fields[24].Name)

	long := make([]snipe.Message, 10)
	for i := range long {
		long[i] = snipe.Message{Type: snipe.Delete, AuthorTag: fmt.Sprint(i), Content: strings.Repeat("a", 2000)}
	}
	e = snipeEmbed(long, "", time.Minute, now)
	e.SetFooter("Sniped by someone#0001")
	assert.LessOrEqual(t, e.Length(), common.MaxEmbedLength)
	last := e.Fields[len(e.Fields)-1]
	assert.Equal(t, "Too many messages have been edited/deleted", last.Name)
	assert.Equal(t, fmt.Sprintf("Only showing the latest %d edits/deletes", len(e.Fields)-1), last.Value)
	assert.Equal(t, common.MaxFieldValueLength, utf8.RuneCountInString(e.Fields[0].Value))
}

func TestSnipeCommand(t *testing.T) {
	t.Parallel()

	b := testModule(t, apis.New())
	b.Snipes.Record(snipe.Message{ChannelID: "20", AuthorID: "3", AuthorTag: "c#0003", Type: snipe.Delete, Content: "first"})
	b.Snipes.Record(snipe.Message{ChannelID: "20", AuthorID: "1", AuthorTag: "owner#0001", Type: snipe.Delete, Content: "secret"})
	b.Snipes.Record(snipe.Message{ChannelID: "21", AuthorID: "3", AuthorTag: "c#0003", Type: snipe.Delete, Content: "other channel"})
	b.Snipes.Record(snipe.Message{ChannelID: "20", AuthorID: "3", AuthorTag: "c#0003", Type: snipe.Edit, OldContent: "a", Content: "b"})

	ctx, r := testContext(map[string]string{})
	require.NoError(t, b.snipe(ctx))
	require.Len(t, r.replies, 1)
	require.Len(t, r.replies[0].Embeds, 1)

	e := r.replies[0].Embeds[0]
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "Message edited by c#0003", e.Fields[0].Name)
	assert.Equal(t, "first", e.Fields[1].Value)
	assert.Equal(t, "Sniped by user#0002", e.Footer)

	ctx, r = testContext(map[string]string{"type": "deletes"})
	require.NoError(t, b.snipe(ctx))
	assert.Len(t, r.replies[0].Embeds[0].Fields, 1)

	ctx, r = testContext(map[string]string{"type": "nope"})
	require.NoError(t, b.snipe(ctx))
	assert.Equal(t, "Type has to be either `deletes` or `edits`", r.replies[0].Content)
	assert.True(t, r.replies[0].Ephemeral)
}

func TestDefinitionEmbed(t *testing.T) {
	t.Parallel()

	defs := make([]apis.Definition, 7)
	for i := range defs {
		defs[i] = apis.Definition{Definition: fmt.Sprintf("definition %d", i+1)}
	}
	entry := apis.Entry{Word: "run", Meanings: []apis.Meaning{
		{PartOfSpeech: "verb", Definitions: defs},
		{PartOfSpeech: "noun", Definitions: defs[:1]},
	}}

	e := definitionEmbed(entry, "", 1)
	assert.Equal(t, "Verb: Run", e.Title)
	require.Len(t, e.Fields, 5)
	assert.Equal(t, "Definition #1", e.Fields[0].Name)
	assert.Equal(t, "Definition 1", e.Fields[0].Value)
	assert.Equal(t, "Page 1/2 • Types: verb, noun", e.Footer)

	e = definitionEmbed(entry, "verb", 2)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "Definition #6", e.Fields[0].Name)

	// out of range pages are clamped
	e = definitionEmbed(entry, "verb", 10)
	assert.Equal(t, "Page 2/2 • Types: verb, noun", e.Footer)

	e = definitionEmbed(entry, "noun", 1)
	assert.Equal(t, "Noun: Run", e.Title)
	assert.Len(t, e.Fields, 1)
}

func TestDefineCache(t *testing.T) {
	t.Parallel()

	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if r.URL.Path == "/api/v2/entries/en/hello" {
			_, _ = io.WriteString(w, `[{"word":"hello","meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"a greeting"}]}]}]`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	api := apis.New(apis.WithRateLimit(1000, 100))
	api.URLs.Dictionary = srv.URL
	b := testModule(t, api)

	for i := 0; i < 2; i++ {
		ctx, r := testContext(map[string]string{"word": "Hello"})
		require.NoError(t, b.define(ctx))
		require.Len(t, r.replies, 1)
		assert.Equal(t, "Noun: Hello", r.replies[0].Embeds[0].Title)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))

	for i := 0; i < 2; i++ {
		ctx, r := testContext(map[string]string{"word": "asdfgh"})
		require.NoError(t, b.define(ctx))
		assert.Equal(t, "No definitions found for: asdfgh", r.replies[0].Embeds[0].Description)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests), "missing words are cached")
}

func TestShorten(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("url") == "bad" {
			_, _ = io.WriteString(w, `{"errorcode":1,"errormessage":"Please enter a valid URL to shorten"}`)
			return
		}
		if r.URL.Query().Get("url") == "down" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = io.WriteString(w, `{"shorturl":"https://is.gd/abc"}`)
	}))
	t.Cleanup(srv.Close)

	api := apis.New(apis.WithRateLimit(1000, 100))
	api.URLs.Shorten = srv.URL
	b := testModule(t, api)

	ctx, r := testContext(map[string]string{"url": "https://example.com"})
	require.NoError(t, b.shorten(ctx))
	assert.Equal(t, "<https://is.gd/abc>", r.replies[0].Content)

	ctx, r = testContext(map[string]string{"url": "bad"})
	require.NoError(t, b.shorten(ctx))
	assert.Equal(t, "Please enter a valid URL to shorten", r.replies[0].Content)

	ctx, r = testContext(map[string]string{"url": "down"})
	require.NoError(t, b.shorten(ctx))
	assert.Equal(t, "An error occurred while shortening that link.", r.replies[0].Content)
}

func TestCommandHelp(t *testing.T) {
	t.Parallel()

	e := commandHelp(&bot.Command{
		Name:        "ban",
		Description: "Bans a user",
		Permissions: discord.PermissionBanMembers,
		Options:     []bot.Option{{Name: "user", Required: true}, {Name: "reason"}},
	}, "!")

	assert.Equal(t, "!ban", e.Title)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "`!ban <user> [reason]`", e.Fields[0].Value)
	assert.Equal(t, "Ban Members", e.Fields[1].Value)
	assert.Equal(t, "This command can't be used in DMs.", e.Footer)
}

func TestUptimeString(t *testing.T) {
	t.Parallel()

	start := time.Unix(1700000000, 0)
	s := uptimeString(start, start.Add(2*time.Hour))
	assert.Equal(t, "The bot has been up since <t:1700000000> (2 hours ago).", s)
}

func TestInviteURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://discord.gg/abcDEF", inviteURL("abcDEF"))
}
