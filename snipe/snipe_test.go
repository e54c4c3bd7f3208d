package snipe

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func contents(msgs []Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Content)
	}
	return out
}

func TestQueryOrderAndFilter(t *testing.T) {
	t.Parallel()

	c := newClock()
	b := New(time.Minute, WithClock(c.Now))

	b.Record(Message{ChannelID: "1", AuthorID: "a", Type: Delete, Content: "first"})
	c.Advance(time.Second)
	b.Record(Message{ChannelID: "2", AuthorID: "a", Type: Delete, Content: "other channel"})
	c.Advance(time.Second)
	b.Record(Message{ChannelID: "1", AuthorID: "a", Type: Edit, OldContent: "x", Content: "edited"})
	c.Advance(time.Second)
	b.Record(Message{ChannelID: "1", AuthorID: "a", Type: Delete, Content: "second"})

	assert.Equal(t, []string{"second", "edited", "first"}, contents(b.Query("1", "")))
	assert.Equal(t, []string{"second", "first"}, contents(b.Query("1", Delete)))
	assert.Equal(t, []string{"edited"}, contents(b.Query("1", Edit)))
	assert.Equal(t, []string{"other channel"}, contents(b.Query("2", "")))
	assert.Empty(t, b.Query("3", ""))
}

func TestQueryExpiry(t *testing.T) {
	t.Parallel()

	c := newClock()
	b := New(2*time.Minute, WithClock(c.Now))

	b.Record(Message{ChannelID: "1", AuthorID: "a", Type: Delete, Content: "old"})
	c.Advance(30 * time.Second)
	b.Record(Message{ChannelID: "1", AuthorID: "a", Type: Delete, Content: "new"})

	c.Advance(90 * time.Second)
	assert.Equal(t, []string{"new", "old"}, contents(b.Query("1", "")), "an entry exactly at the boundary is included")

	c.Advance(time.Millisecond)
	assert.Equal(t, []string{"new"}, contents(b.Query("1", "")))

	c.Advance(time.Minute)
	assert.Empty(t, b.Query("1", ""))
}

func TestQueryExcludesBotsAndOwners(t *testing.T) {
	t.Parallel()

	c := newClock()
	b := New(time.Minute, WithClock(c.Now), WithOwners("owner"))

	b.Record(Message{ChannelID: "1", AuthorID: "owner", Type: Delete, Content: "owner"})
	b.Record(Message{ChannelID: "1", AuthorID: "bot", Bot: true, Type: Delete, Content: "bot"})
	b.Record(Message{ChannelID: "1", AuthorID: "user", Type: Delete, Content: "user"})

	assert.Equal(t, []string{"user"}, contents(b.Query("1", "")))
}

func TestNoDeduplication(t *testing.T) {
	t.Parallel()

	b := New(time.Minute)
	for i := 0; i < 3; i++ {
		b.Record(Message{MessageID: "m", ChannelID: "1", AuthorID: "a", Type: Edit, Content: "same"})
	}
	assert.Len(t, b.Query("1", Edit), 3)
}

func TestRecordPrunes(t *testing.T) {
	t.Parallel()

	c := newClock()
	b := New(time.Minute, WithClock(c.Now))

	b.Record(Message{ChannelID: "1", Content: "a"})
	b.Record(Message{ChannelID: "1", Content: "b"})
	c.Advance(90 * time.Second)
	b.Record(Message{ChannelID: "1", Content: "c"})
	require.Equal(t, 3, b.Len(), "entries under twice the lifetime are kept")

	c.Advance(31 * time.Second)
	b.Record(Message{ChannelID: "1", Content: "d"})
	assert.Equal(t, 2, b.Len())
}

func TestRecordStampsTime(t *testing.T) {
	t.Parallel()

	c := newClock()
	b := New(time.Minute, WithClock(c.Now))

	b.Record(Message{ChannelID: "1", AuthorID: "a", Time: time.Unix(0, 0)})
	msgs := b.Query("1", "")
	require.Len(t, msgs, 1)
	assert.Equal(t, c.Now(), msgs[0].Time)
}

func TestDefaultLifetime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultLifetime, New(0).Lifetime())
}
