package ui

import "time"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate reads the date and timestamp formats the backend emits.
func ParseDate(s string) (time.Time, bool) {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date shows the calendar date of a backend timestamp, or s unchanged when
// it cannot be parsed.
func Date(s string) string {
	if t, ok := ParseDate(s); ok {
		return t.Format("Jan 2, 2006")
	}
	return s
}

// DateTime is Date with the time of day.
func DateTime(s string) string {
	if t, ok := ParseDate(s); ok {
		return t.Format("Jan 2, 2006 15:04")
	}
	return s
}
