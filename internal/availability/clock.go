package availability

import (
	"fmt"
	"strconv"
	"time"
)

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ParseClock converts an "HH:mm" 24-hour string to minutes since midnight.
// Malformed input returns -1; callers treat a negative result as an
// unusable schedule rather than guessing.
func ParseClock(clock string) int {
	if len(clock) != 5 || clock[2] != ':' {
		return -1
	}
	h, err := strconv.Atoi(clock[:2])
	if err != nil || h < 0 || h > 23 {
		return -1
	}
	m, err := strconv.Atoi(clock[3:])
	if err != nil || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

// FormatMinutes renders minutes-since-midnight as a 12-hour clock label,
// always "h:mm AM"/"h:mm PM" regardless of runtime locale.
func FormatMinutes(minutes int) string {
	h := (minutes / 60) % 24
	m := minutes % 60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, period)
}

// FormatLocalDate renders the date's local calendar fields as "YYYY-MM-DD".
// It must not round-trip through UTC: near midnight that would shift the
// date in non-UTC zones.
func FormatLocalDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// NormalizeDate strips the time-of-day, returning local midnight. Normalized
// dates are the canonical key for "which day is this slot on".
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayName returns the 3-letter day code used as a Timesheet key.
func DayName(t time.Time) string {
	return dayNames[int(t.Weekday())]
}

// OverrideKey composes the OverrideMap key for a date and integer hour.
// The hour is not zero-padded.
func OverrideKey(date time.Time, hour int) string {
	return FormatLocalDate(date) + "-" + strconv.Itoa(hour)
}

// SameLocalDate reports whether two instants fall on the same local
// calendar date.
func SameLocalDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
