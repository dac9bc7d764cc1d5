package utils

import (
	"strconv"
	"strings"
	"time"
)

// instantLayouts are tried in order by ParseInstant. Sources are lenient
// about their timestamp format, so parsing is best-effort across the common
// ISO-8601 shapes.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseInstant parses an ISO-8601-ish timestamp. It reports false instead of
// erroring so callers can treat unparsable values as missing.
func ParseInstant(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range instantLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ParseValue coerces a raw cell to int, then float64 honoring the decimal
// separator, and falls back to the string itself.
func ParseValue(s string, decimal rune) interface{} {
	s = strings.TrimSpace(s)

	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	numeric := s
	if decimal != 0 && decimal != '.' {
		numeric = strings.Replace(s, string(decimal), ".", 1)
	}
	if f, err := strconv.ParseFloat(numeric, 64); err == nil {
		return f
	}
	return s
}

// ParseDuration parses a duration string like "1h", falling back to the
// given default on empty or malformed input.
func ParseDuration(d string, fallback time.Duration) time.Duration {
	if d == "" {
		return fallback
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return fallback
	}
	return duration
}

// Numeric converts supported cell types to float64, returning 0 for anything
// non-numeric.
func Numeric(v interface{}) float64 {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case float64:
		return val
	case float32:
		return float64(val)
	default:
		return 0
	}
}
