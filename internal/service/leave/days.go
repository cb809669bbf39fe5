package leave

import "time"

// LeaveDays returns the inclusive calendar-day count of [start, end]. A
// single-day leave yields 1. Callers must have validated end >= start; the
// calculation never produces a negative count on valid input. Dates are
// compared on their calendar day only, no timezone arithmetic.
func LeaveDays(start, end time.Time) int {
	start = truncateToDay(start)
	end = truncateToDay(end)
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
