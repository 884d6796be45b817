package util

import "time"

// AddMonths shifts a date forward by whole calendar months, clamping the
// day to the last day of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, months int) time.Time {
	year := t.Year() + (int(t.Month())-1+months)/12
	month := time.Month((int(t.Month())-1+months)%12 + 1)
	day := t.Day()
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsMonthlyStep reports whether to is exactly one calendar month after
// from, allowing for end-of-month clamping.
func IsMonthlyStep(from, to time.Time) bool {
	next := AddMonths(from, 1)
	return next.Year() == to.Year() && next.Month() == to.Month() && next.Day() == to.Day()
}
