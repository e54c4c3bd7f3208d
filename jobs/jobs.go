package jobs

import (
	"context"
	"time"

	"github.com/jamesatjaminit/Jam-Bot/apis"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/ratelimit"
	"go.uber.org/zap"
)

// Intervals
const (
	TaskInterval   = 30 * time.Second
	PruneInterval  = 10 * time.Minute
	StatsInterval  = time.Minute
	StatusInterval = 10 * time.Minute
)

// PruneAge is how long rate limit records are kept by the in-memory limiter.
const PruneAge = time.Hour

// Setup schedules all of the bot's jobs. Jobs stop when ctx is cancelled.
func Setup(ctx context.Context, b *bot.Bot) *Scheduler {
	log := b.Log.Named("jobs")
	s := NewScheduler(ctx, log)

	if c := b.Config.Twitch; c.Enabled() {
		t := &Twitch{
			Log:         log.Named("twitch"),
			Streams:     apis.NewTwitch(ctx, c.ClientID, c.ClientSecret),
			Messages:    b.State,
			Settings:    b.Settings,
			UserID:      c.UserID,
			ChannelID:   c.ChannelID,
			MentionRole: c.MentionRole,
			Interval:    c.Interval,
		}
		s.Every("twitch", c.Interval, t.Check)
	} else {
		log.Info("Twitch notifications aren't configured")
	}

	tasks := &Tasks{
		Log:      log.Named("tasks"),
		Store:    b.DB,
		Unbanner: b.State,
	}
	s.Every("tasks", TaskInterval, tasks.Run)

	if m, ok := b.Limiter.(*ratelimit.Memory); ok {
		s.Every("ratelimit-prune", PruneInterval, pruneLimiter(m, log))
	}

	if b.Stats != nil {
		s.Every("stats", StatsInterval, func(context.Context) error {
			b.Stats.Submit()
			return nil
		})
	}

	s.Every("status", StatusInterval, updateStatus(b))

	return s
}

func pruneLimiter(m *ratelimit.Memory, log *zap.SugaredLogger) Func {
	return func(context.Context) error {
		if n := m.Prune(PruneAge); n > 0 {
			log.Debugf("Pruned %v rate limit records", n)
		}
		return nil
	}
}
