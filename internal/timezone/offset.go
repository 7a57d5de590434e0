// Package timezone stores each user's UTC offset.
package timezone

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Offsets are whole hours east of UTC.
const (
	MinOffset     = -12
	MaxOffset     = 14
	DefaultOffset = 3
)

// ErrOutOfRange is returned for offsets outside [MinOffset, MaxOffset].
var ErrOutOfRange = errors.New("timezone offset out of range")

// Valid reports whether offset is a selectable UTC offset.
func Valid(offset int) bool {
	return offset >= MinOffset && offset <= MaxOffset
}

// Parse reads a whole-hour offset such as "3", "+3" or "-12".
func Parse(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse offset %q: %w", s, err)
	}
	if !Valid(n) {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return n, nil
}

// Label renders offset as shown to users: "GMT+3", "GMT-12", "GMT+0".
func Label(offset int) string {
	return fmt.Sprintf("GMT%+d", offset)
}

// All lists every valid offset in ascending order.
func All() []int {
	out := make([]int, 0, MaxOffset-MinOffset+1)
	for z := MinOffset; z <= MaxOffset; z++ {
		out = append(out, z)
	}
	return out
}
