package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// String returns the value of key as a string.
func (s *Store) String(ctx context.Context, guildID, key string) (string, bool) {
	v, ok := s.Get(ctx, guildID, key)
	if !ok {
		return "", false
	}
	return AsString(v)
}

// Bool returns the value of key as a bool. Absent keys are false.
func (s *Store) Bool(ctx context.Context, guildID, key string) bool {
	v, ok := s.Get(ctx, guildID, key)
	if !ok {
		return false
	}
	b, _ := AsBool(v)
	return b
}

// Int64 returns the value of key as an int64.
func (s *Store) Int64(ctx context.Context, guildID, key string) (int64, bool) {
	v, ok := s.Get(ctx, guildID, key)
	if !ok {
		return 0, false
	}
	return AsInt64(v)
}

// AsString converts a stored value to a string. Numbers are formatted, other types are rejected.
func AsString(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case int, int32, int64:
		return fmt.Sprint(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	}
	return "", false
}

// AsBool converts a stored value to a bool.
func AsBool(v any) (bool, bool) {
	switch v := v.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	}
	return false, false
}

// AsInt64 converts a stored value to an int64.
// JSON numbers decode as float64 and Mongo numbers as int32 or int64, so all are accepted.
func AsInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		i, err := v.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		return i, err == nil
	}
	return 0, false
}
