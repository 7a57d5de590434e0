package helpers

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-1-2",
	"02.01.2006 15:04",
	"02.01.2006",
	"2.1.2006",
}

// ParseFlexibleDate parses input with the first matching layout, in loc.
// A nil loc means UTC.
func ParseFlexibleDate(input string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
