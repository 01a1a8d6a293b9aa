package utils

import "time"

// DateLayout is the calendar-day format used for queue dates and
// spreadsheet provenance.
const DateLayout = "2006-01-02"

// NowRFC3339 returns the current time in RFC3339 format
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ParseRFC3339 parses a time string in RFC3339 format
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// Today returns the current calendar day in DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysFromNow returns the instant n whole days after now, preserving the
// time of day.
func DaysFromNow(n int) time.Time {
	return time.Now().AddDate(0, 0, n)
}
