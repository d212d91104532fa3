package dateutil

import (
	"time"
)

// Genesis is the reference epoch for the price model: the Bitcoin genesis
// block date, 2009-01-03 UTC.
var Genesis = time.Date(2009, 1, 3, 0, 0, 0, 0, time.UTC)

const secondsPerDay = 24 * 60 * 60

// DaysSinceGenesis returns the whole days elapsed from Genesis to t, floored.
// Dates on or before Genesis yield zero or a negative offset.
func DaysSinceGenesis(t time.Time) int {
	secs := t.Unix() - Genesis.Unix()
	days := secs / secondsPerDay
	if secs%secondsPerDay < 0 {
		days--
	}
	return int(days)
}

// EndOfYearDate returns Dec 31 of year at midnight UTC, the snapshot date
// used for yearly prices.
func EndOfYearDate(year int) time.Time {
	return time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
}

// YearEndDayOffset is DaysSinceGenesis(EndOfYearDate(year)).
func YearEndDayOffset(year int) int {
	return DaysSinceGenesis(EndOfYearDate(year))
}

// YearsInclusive returns end-start+1, or zero for an inverted range.
func YearsInclusive(start, end int) int {
	if end < start {
		return 0
	}
	return end - start + 1
}
