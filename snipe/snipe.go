// Package snipe keeps recently deleted and edited messages in memory for a short time.
package snipe

import (
	"sync"
	"time"

	"github.com/jamesatjaminit/Jam-Bot/common"
)

// DefaultLifetime is how long a snipe can be queried.
const DefaultLifetime = 120 * time.Second

// Type is the kind of snipe.
type Type string

// Snipe types. An empty Type matches both when querying.
const (
	Delete Type = "delete"
	Edit   Type = "edit"
)

// Message is a deleted or edited message.
type Message struct {
	MessageID string
	ChannelID string
	GuildID   string
	AuthorID  string
	AuthorTag string
	Bot       bool

	Type Type
	// OldContent is only set for edits.
	OldContent string
	Content    string

	Time time.Time
}

// Buffer is an append-only list of snipes, pruned as new ones are recorded.
type Buffer struct {
	mu       sync.Mutex
	messages []Message

	lifetime time.Duration
	owners   *common.Set[string]
	now      func() time.Time
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithOwners hides messages by the given user IDs from queries.
func WithOwners(ids ...string) Option {
	return func(b *Buffer) {
		b.owners = common.NewSet(ids...)
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Buffer) {
		b.now = now
	}
}

// New returns a Buffer. A lifetime of zero or less uses DefaultLifetime.
func New(lifetime time.Duration, opts ...Option) *Buffer {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}

	b := &Buffer{
		lifetime: lifetime,
		owners:   common.NewSet[string](),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Lifetime returns how long snipes are kept.
func (b *Buffer) Lifetime() time.Duration {
	return b.lifetime
}

// Record adds a message, with its time set to now.
// Messages older than twice the lifetime are dropped.
func (b *Buffer) Record(m Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	m.Time = now

	cutoff := now.Add(-2 * b.lifetime)
	i := 0
	for i < len(b.messages) && b.messages[i].Time.Before(cutoff) {
		i++
	}
	if i > 0 {
		b.messages = append(b.messages[:0], b.messages[i:]...)
	}

	b.messages = append(b.messages, m)
}

// Query returns the snipes in a channel that are at most the lifetime old, newest first.
// Messages by bots and owners are never returned.
func (b *Buffer) Query(channelID string, t Type) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	cutoff := b.now().Add(-b.lifetime)

	var out []Message
	for i := len(b.messages) - 1; i >= 0; i-- {
		m := b.messages[i]
		if m.Time.Before(cutoff) {
			break
		}

		if m.ChannelID != channelID || (t != "" && m.Type != t) {
			continue
		}
		if m.Bot || b.owners.Exists(m.AuthorID) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Len returns the number of stored snipes, including expired ones not yet pruned.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.messages)
}
