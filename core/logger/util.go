package logger

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Status maps err onto the status vocabulary: ok, cancelled when the
// request context went away, fail otherwise.
func Status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "fail"
	}
}

// Took is RoundMS(time.Since(start)).
func Took(start time.Time) time.Duration {
	return RoundMS(time.Since(start))
}

// RoundMS keeps millisecond precision for the *_ms keys; negative values
// become zero.
func RoundMS(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d.Round(time.Millisecond)
}

// SummarizeStrings previews values for a single log field: the first limit
// entries and, when some are cut, a "+N more" tail. The bool reports the cut.
func SummarizeStrings(values []string, limit int) (string, bool) {
	if len(values) <= max(limit, 0) {
		return strings.Join(values, ", "), false
	}
	if limit <= 0 {
		return "+" + strconv.Itoa(len(values)) + " more", true
	}
	head := strings.Join(values[:limit], ", ")
	return head + ", +" + strconv.Itoa(len(values)-limit) + " more", true
}
