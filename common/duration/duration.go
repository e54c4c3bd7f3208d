// Package duration parses and formats human-friendly durations such as "1w2d".
// Format writes them out in full, for example "3 days and 4 hours".
package duration

import (
	"math"
	"strconv"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/dustin/go-humanize/english"
)

// For consistency reasons, months are always treated as 30 days, and years are always treated as 365 days.
const (
	Day   = 24 * time.Hour
	Week  = 7 * Day
	Month = 30 * Day
	Year  = 365 * Day
)

// ErrInvalid is returned by Parse for malformed durations.
const ErrInvalid = errors.Sentinel("invalid duration")

var units = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": Day,
	"w": Week,
	"y": Year,
}

// Parse parses a duration made of whole numbers followed by a unit: s, m, h, d, w or y.
// Units can be combined, for example "1d12h". Durations that don't fit in a time.Duration are invalid.
func Parse(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrInvalid
	}

	var total time.Duration
	for s != "" {
		i := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == 0 || i == len(s) {
			return 0, ErrInvalid
		}

		n, err := strconv.ParseInt(s[:i], 10, 64)
		if err != nil {
			return 0, errors.WithStack(ErrInvalid)
		}

		unit, ok := units[s[i:i+1]]
		if !ok {
			return 0, ErrInvalid
		}
		if n > int64(math.MaxInt64/unit) {
			return 0, ErrInvalid
		}
		d := time.Duration(n) * unit
		if total > math.MaxInt64-d {
			return 0, ErrInvalid
		}
		total += d
		s = s[i+1:]
	}
	return total, nil
}

// Format returns d as a human-readable string.
// Durations under a month are shown down to the second, under a year down to the minute, and longer ones down to the hour.
func Format(d time.Duration) string {
	type unit struct {
		d    time.Duration
		name string
	}

	us := []unit{{Day, "day"}, {time.Hour, "hour"}, {time.Minute, "minute"}, {time.Second, "second"}}
	switch {
	case d >= Year:
		us = []unit{{Year, "year"}, {Month, "month"}, {Day, "day"}, {time.Hour, "hour"}}
	case d >= Month:
		us = []unit{{Month, "month"}, {Day, "day"}, {time.Hour, "hour"}, {time.Minute, "minute"}}
	}

	s := make([]string, 0, 4)
	for i, u := range us {
		n := int(d / u.d)
		if i == len(us)-1 {
			n = int(math.Round(float64(d) / float64(u.d)))
		}
		if n > 0 {
			s = append(s, plural(n, u.name))
		}
		d -= time.Duration(n) * u.d
	}

	if len(s) == 0 {
		return plural(0, us[len(us)-1].name)
	}
	return english.OxfordWordSeries(s, "and")
}

func plural(i int, word string) string {
	if i == 1 {
		return "1 " + word
	}
	return strconv.Itoa(i) + " " + word + "s"
}
