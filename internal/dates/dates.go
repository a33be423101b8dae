// Package dates normalizes the many shapes a stored date can take into the
// YYYY-MM-DD form the API returns.
package dates

import (
	"strings"
	"time"
)

const Layout = "2006-01-02"

var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	Layout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type asTimer interface {
	AsTime() time.Time
}

type toDater interface {
	ToDate() time.Time
}

// Format returns v as YYYY-MM-DD when it is recognisably a date. Anything else
// is returned untouched.
func Format(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return formatTime(t)
	case *time.Time:
		if t == nil {
			return nil
		}
		return formatTime(*t)
	case asTimer:
		return formatTime(t.AsTime())
	case toDater:
		return formatTime(t.ToDate())
	case string:
		if parsed, ok := Parse(t); ok {
			return formatTime(parsed)
		}
		return t
	default:
		return v
	}
}

// FormatString is Format for values already known to be strings.
func FormatString(s string) string {
	if parsed, ok := Parse(s); ok {
		return formatTime(parsed)
	}
	return s
}

// FormatFields applies Format to every value of m, returning a new map.
func FormatFields(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Format(v)
	}
	return out
}

// Parse reads s using the accepted date layouts.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatTime(t time.Time) string {
	return t.UTC().Format(Layout)
}
