package log

import (
	"context"
	"fmt"
	"sync"
	"time"

	"emperror.dev/errors"
	"github.com/ReneKroon/ttlcache/v2"
	"github.com/diamondburned/arikawa/v3/api/webhook"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DedupeWindow is how long an identical message is suppressed after being forwarded.
const DedupeWindow = 20 * time.Second

const (
	maxBatch      = 5
	flushInterval = 5 * time.Second
	queueSize     = 100
)

type executor interface {
	Execute(data webhook.ExecuteData) error
}

// Forwarder sends warning and error log entries to a Discord webhook.
// Entries are batched and sent from Run, never from the logging goroutine.
type Forwarder struct {
	exec    executor
	name    string
	entries chan zapcore.Entry

	mu     sync.Mutex
	recent *ttlcache.Cache
}

// NewForwarder creates a Forwarder for the given webhook URL.
func NewForwarder(url, name string) (*Forwarder, error) {
	client, err := webhook.NewFromURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parsing webhook url")
	}

	return newForwarder(client, name, DedupeWindow), nil
}

func newForwarder(exec executor, name string, window time.Duration) *Forwarder {
	recent := ttlcache.NewCache()
	_ = recent.SetTTL(window)
	recent.SkipTTLExtensionOnHit(true)

	return &Forwarder{
		exec:    exec,
		name:    name,
		entries: make(chan zapcore.Entry, queueSize),
		recent:  recent,
	}
}

// Option returns a zap option that registers the Forwarder as a hook.
func (f *Forwarder) Option() zap.Option {
	return zap.Hooks(f.Hook)
}

// Hook queues warn and error entries. Entries with a message already forwarded within the
// dedupe window are dropped, as are entries that don't fit in the queue.
func (f *Forwarder) Hook(e zapcore.Entry) error {
	if e.Level < zapcore.WarnLevel {
		return nil
	}

	f.mu.Lock()
	if _, err := f.recent.Get(e.Message); err == nil {
		f.mu.Unlock()
		return nil
	}
	_ = f.recent.Set(e.Message, struct{}{})
	f.mu.Unlock()

	select {
	case f.entries <- e:
	default:
	}
	return nil
}

// Run sends queued entries until ctx is cancelled, then flushes what is left.
func (f *Forwarder) Run(ctx context.Context) {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()
	defer f.recent.Close()

	var batch []discord.Embed
	flush := func() {
		if len(batch) == 0 {
			return
		}
		// the logger can't be used here, it would loop back into the hook
		_ = f.exec.Execute(webhook.ExecuteData{
			Username: f.name,
			Embeds:   batch,
		})
		batch = nil
	}

	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case e := <-f.entries:
					batch = append(batch, entryEmbed(e))
					if len(batch) >= maxBatch {
						flush()
					}
				default:
					flush()
					return
				}
			}
		case e := <-f.entries:
			batch = append(batch, entryEmbed(e))
			if len(batch) >= maxBatch {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func entryEmbed(e zapcore.Entry) discord.Embed {
	colour := common.ColourOrange
	if e.Level >= zapcore.ErrorLevel {
		colour = common.ColourRed
	}

	msg := common.Truncate(e.Message, 4000)

	embed := discord.Embed{
		Title:       e.Level.CapitalString(),
		Description: fmt.Sprintf("```\n%s\n```", msg),
		Color:       colour,
		Timestamp:   discord.NewTimestamp(e.Time),
	}

	if e.Caller.Defined {
		embed.Footer = &discord.EmbedFooter{Text: e.Caller.TrimmedPath()}
	}
	return embed
}
