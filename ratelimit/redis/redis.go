// Package redis is a Redis-backed rate limiter, shared between restarts and bot instances.
package redis

import (
	"context"
	"strconv"
	"time"

	"emperror.dev/errors"
	"github.com/jamesatjaminit/Jam-Bot/ratelimit"
	"github.com/mediocregopher/radix/v4"
	"go.uber.org/zap"
)

// Expiry is how long an invocation is kept. It must be longer than any command's cooldown.
const Expiry = time.Hour

var _ ratelimit.Limiter = (*Limiter)(nil)

// Limiter stores the time of each user's last invocation of a command in Redis.
// Redis errors are logged and treated as not rate limited.
type Limiter struct {
	client radix.Client
	log    *zap.SugaredLogger
	now    func() time.Time
}

// New connects to Redis.
func New(url string, log *zap.SugaredLogger) (*Limiter, error) {
	client, err := (&radix.PoolConfig{}).New(context.Background(), "tcp", url)
	if err != nil {
		return nil, errors.Wrap(err, "creating radix client")
	}

	return &Limiter{client: client, log: log, now: time.Now}, nil
}

// Close closes the underlying connection pool.
func (l *Limiter) Close() error {
	return l.client.Close()
}

func key(command, userID string) string {
	return "ratelimit:" + command + ":" + userID
}

// IsRateLimited returns true if the user ran the command less than cooldown ago.
func (l *Limiter) IsRateLimited(ctx context.Context, command, userID string, cooldown time.Duration) bool {
	return l.Remaining(ctx, command, userID, cooldown) > 0
}

// Record stores the current time as the user's last invocation of the command.
func (l *Limiter) Record(ctx context.Context, command, userID string) {
	ms := strconv.FormatInt(l.now().UnixMilli(), 10)

	err := l.client.Do(ctx, radix.Cmd(nil, "SET", key(command, userID), ms, "EX", strconv.Itoa(int(Expiry.Seconds()))))
	if err != nil {
		l.log.Errorf("recording invocation of %v by %v: %v", command, userID, err)
	}
}

// Remaining returns how long until the user can run the command again.
func (l *Limiter) Remaining(ctx context.Context, command, userID string, cooldown time.Duration) time.Duration {
	var raw string
	mb := radix.Maybe{Rcv: &raw}

	err := l.client.Do(ctx, radix.Cmd(&mb, "GET", key(command, userID)))
	if err != nil {
		l.log.Errorf("getting last invocation of %v by %v: %v", command, userID, err)
		return 0
	}

	if mb.Null {
		return 0
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		l.log.Errorf("parsing last invocation of %v by %v: %v", command, userID, err)
		return 0
	}

	return ratelimit.Left(time.UnixMilli(ms), l.now(), cooldown)
}
