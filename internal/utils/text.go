package utils

import (
	"github.com/plemaire/taskdeck/internal/clock"
)

// Truncate returns a truncated string with "..." if it exceeds maxLen.
// This function is Unicode-safe, counting runes instead of bytes.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// FormatDueDate renders a stored "YYYY-MM-DD" due date as "02 Jan 2006" for
// display. Empty or malformed input is returned unchanged.
func FormatDueDate(dueDate string) string {
	t, ok := clock.ParseDueDate(dueDate)
	if !ok {
		return dueDate
	}
	return t.Format("02 Jan 2006")
}
