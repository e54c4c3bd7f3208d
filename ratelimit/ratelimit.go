// Package ratelimit tracks per-user command cooldowns.
package ratelimit

import (
	"context"
	"time"

	"github.com/jamesatjaminit/Jam-Bot/common"
)

// DefaultCooldown is used when a command doesn't set its own cooldown.
const DefaultCooldown = 3 * time.Second

// Limiter records command invocations and reports whether a user is on cooldown.
// Checking and recording are separate calls, so two invocations at the same instant can both pass.
type Limiter interface {
	IsRateLimited(ctx context.Context, command, userID string, cooldown time.Duration) bool
	Record(ctx context.Context, command, userID string)
	Remaining(ctx context.Context, command, userID string, cooldown time.Duration) time.Duration
}

// Cooldown returns d, or DefaultCooldown if d is not positive.
func Cooldown(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultCooldown
	}
	return d
}

// RemainingMs returns the remaining cooldown in whole milliseconds.
func RemainingMs(ctx context.Context, l Limiter, command, userID string, cooldown time.Duration) int64 {
	return l.Remaining(ctx, command, userID, cooldown).Milliseconds()
}

// Left returns the cooldown left at now for an invocation at last. It is never negative.
func Left(last, now time.Time, cooldown time.Duration) time.Duration {
	left := last.Add(Cooldown(cooldown)).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

type key struct {
	command, user string
}

// Memory is an in-memory Limiter.
type Memory struct {
	last *common.Map[key, time.Time]
	now  func() time.Time
}

var _ Limiter = (*Memory)(nil)

// NewMemory returns a new Memory limiter. If now is nil, time.Now is used.
func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}

	return &Memory{
		last: common.NewMap[key, time.Time](),
		now:  now,
	}
}

// IsRateLimited returns true if the user ran the command less than cooldown ago.
func (m *Memory) IsRateLimited(ctx context.Context, command, userID string, cooldown time.Duration) bool {
	return m.Remaining(ctx, command, userID, cooldown) > 0
}

// Record stores the current time as the user's last invocation of the command.
func (m *Memory) Record(_ context.Context, command, userID string) {
	m.last.Set(key{command, userID}, m.now())
}

// Remaining returns how long until the user can run the command again.
func (m *Memory) Remaining(_ context.Context, command, userID string, cooldown time.Duration) time.Duration {
	last, ok := m.last.Get(key{command, userID})
	if !ok {
		return 0
	}
	return Left(last, m.now(), cooldown)
}

// Prune drops records older than olderThan, and returns how many were dropped.
func (m *Memory) Prune(olderThan time.Duration) int {
	cutoff := m.now().Add(-olderThan)
	return m.last.RemoveFunc(func(_ key, t time.Time) bool {
		return t.Before(cutoff)
	})
}

// Len returns the number of records.
func (m *Memory) Len() int {
	return m.last.Length()
}
