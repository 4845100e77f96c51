package utils

import (
	"time"
)

// DateOnly drops the time-of-day component, keeping a calendar date at
// midnight UTC. Issue and expiry dates are always stored this way.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddMonthsClamped adds calendar months to a date, preserving the day of
// month. When the target month is shorter the day clamps to its last valid
// day (2025-01-31 + 1 month = 2025-02-28), unlike time.AddDate which would
// normalize past the month boundary.
func AddMonthsClamped(d time.Time, months int) time.Time {
	year, month, day := d.Date()

	totalMonths := int(month) - 1 + months
	targetYear := year + totalMonths/12
	targetMonth := time.Month(totalMonths%12 + 1)
	if totalMonths < 0 {
		// integer division truncates toward zero; shift back one year when
		// the month underflows
		targetYear = year + (totalMonths-11)/12
		targetMonth = time.Month((totalMonths%12+12)%12 + 1)
	}

	lastDay := daysInMonth(targetYear, targetMonth)
	if day > lastDay {
		day = lastDay
	}

	return time.Date(targetYear, targetMonth, day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
