// Package clock supplies the calendar arithmetic used by view filtering and
// recurrence: start-of-day truncation, day/month addition and same-day
// comparison. Dates are local; due dates carry no time component.
package clock

import "time"

// DueDateLayout is the wire format of task due dates.
const DueDateLayout = "2006-01-02"

// Clock supplies the current time. The tracker and filters take a Clock so
// date-relative behavior is testable headlessly.
type Clock interface {
	Now() time.Time
}

// System is the real clock.
type System struct{}

// Now returns the current local time.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed is a clock pinned to a single instant, for tests.
type Fixed struct {
	Instant time.Time
}

// Now returns the pinned instant.
func (f Fixed) Now() time.Time {
	return f.Instant
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfToday returns local midnight of the clock's current day.
func StartOfToday(c Clock) time.Time {
	return StartOfDay(c.Now())
}

// AddDays returns t advanced by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddMonths returns t advanced by n calendar months, preserving the
// day-of-month. When the target month is shorter, the day clamps to that
// month's last valid day (Jan 31 + 1 month = Feb 28/29), unlike
// time.AddDate which would normalize into March.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, n, 0)
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseDueDate parses a "YYYY-MM-DD" due date into a local midnight instant.
// The second return value is false for empty or malformed input.
func ParseDueDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DueDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDueDate renders t as a "YYYY-MM-DD" due date.
func FormatDueDate(t time.Time) string {
	return t.Format(DueDateLayout)
}
