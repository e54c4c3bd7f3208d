// Package common contains helpers shared by every part of the bot.
package common

import (
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
)

// Embed colours
const (
	ColourRed    discord.Color = 0xE74C3C
	ColourGreen  discord.Color = 0x2ECC71
	ColourBlue   discord.Color = 0x3498DB
	ColourOrange discord.Color = 0xE67E22
	ColourPurple discord.Color = 0x9B59B6
	ColourTwitch discord.Color = 0x6441A5
	ColourGold   discord.Color = 0xF1C40F
)

// Discord limits
const (
	MaxEmbedFields      = 25
	MaxFieldValueLength = 1024
	MaxDescription      = 4096
	MaxEmbedLength      = 6000
)

// Truncate shortens s to at most max runes, replacing the last rune with an ellipsis if it was cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}

	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// OrDefault returns s, or def if s is empty or only whitespace.
func OrDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// JoinedBefore reports whether the bot joined a guild before the given duration elapsed,
// which distinguishes guilds sent on startup from newly joined ones.
func JoinedBefore(joined discord.Timestamp, d time.Duration, now time.Time) bool {
	if !joined.IsValid() {
		return false
	}
	return joined.Time().Before(now.Add(-d))
}
