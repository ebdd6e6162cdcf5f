package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseClock parses a 12-hour display time like "9:00 AM" or "12:30 pm" and
// returns the hour (0-23) and minute.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("3:04 PM", strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// ClockMinutes converts a 12-hour display time to minutes since midnight.
func ClockMinutes(s string) (int, error) {
	h, m, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as a 12-hour display string.
func FormatClock(minutes int) string {
	t := time.Date(2000, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return t.Format("3:04 PM")
}
