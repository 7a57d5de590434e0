// Package summer maps a moment in time to its day of summer and to the
// sticker that represents that day.
package summer

import "time"

const (
	// SeasonDays is the number of days from June 1 to August 31.
	SeasonDays = 92
	// TableSize is SeasonDays stickers plus the off-season one.
	TableSize = SeasonDays + 1
	// FallbackIndex is the table slot used outside summer.
	FallbackIndex = SeasonDays
)

// DayNumber returns the number of calendar days between May 31 and the date
// of now as seen at UTC+offset hours. June 1 is 1 and August 31 is 92;
// dates before June are zero or negative, dates after August exceed 92.
func DayNumber(now time.Time, offset int) int {
	local := now.In(time.FixedZone("", offset*3600))
	y, m, d := local.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	eve := time.Date(y, time.May, 31, 0, 0, 0, 0, time.UTC)
	return int(date.Sub(eve).Hours() / 24)
}

// Index maps a day number to its table slot.
func Index(day int) int {
	if day >= 1 && day <= SeasonDays {
		return day - 1
	}
	return FallbackIndex
}

// InSeason reports whether day is a summer day.
func InSeason(day int) bool {
	return Index(day) != FallbackIndex
}
