package dataset

import "time"

// ordinalUnixEpoch is the proleptic Gregorian ordinal of 1970-01-01.
const ordinalUnixEpoch = 719163

// OrdinalDay returns the proleptic Gregorian ordinal of t's calendar date,
// where 0001-01-01 is day 1. The time of day is ignored.
func OrdinalDay(t time.Time) int {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(midnight.Unix()/86400) + ordinalUnixEpoch
}
