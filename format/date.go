package format

import (
	"fmt"
	"time"
)

// Empty is shown in place of a missing date.
const Empty = "—"

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts the timestamp shapes the backend emits.
func ParseTime(s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders t as "Jan 2, 2006".
func Date(t time.Time) string {
	if t.IsZero() {
		return Empty
	}
	return t.Format("Jan 2, 2006")
}

// DateString parses s and renders it like Date.
func DateString(s string) string {
	t, ok := ParseTime(s)
	if !ok {
		return Empty
	}
	return Date(t)
}

// DatePtr renders an optional timestamp.
func DatePtr(s *string) string {
	if s == nil {
		return Empty
	}
	return DateString(*s)
}

// TimeAgo renders how long before now t happened.
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return Empty
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	default:
		return Date(t)
	}
}

// Period is the billing period label the backend expects, e.g. "Jan 2006".
func Period(t time.Time) string {
	return t.Format("Jan 2006")
}
