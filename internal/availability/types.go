// Package availability resolves a provider's weekly timesheet, per-hour
// overrides, and existing busy intervals into bookable time slots for a
// calendar date. Everything in this package is pure: functions read only
// their arguments and return fresh values, so callers can recompute freely
// on every selection change.
package availability

import "time"

// DefaultDurationMinutes is used when an event type carries no usable duration.
const DefaultDurationMinutes = 30

// Reason explains why a slot is not bookable.
type Reason string

const (
	ReasonBreak       Reason = "break"
	ReasonBooked      Reason = "booked"
	ReasonUnavailable Reason = "unavailable"
	ReasonPast        Reason = "past"
)

// BreakTime is a non-bookable interval inside a day's open hours.
type BreakTime struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySchedule is one weekday's availability template. Times are "HH:mm"
// 24-hour strings; EndTime is after StartTime whenever the day is enabled.
type DaySchedule struct {
	Enabled   bool        `json:"enabled"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
	Breaks    []BreakTime `json:"breaks,omitempty"`
}

// Timesheet maps 3-letter day names ("Mon") to that day's schedule. Missing
// days are treated as disabled.
type Timesheet map[string]DaySchedule

// OverrideMap holds per-date-per-hour exceptions keyed "YYYY-MM-DD-<hour>".
// A false value forces the hour off regardless of the timesheet; an absent
// key defers to the timesheet.
type OverrideMap map[string]bool

// Settings is the effective availability for one actor: either the
// workspace-wide template or the result of merging it with a provider's
// override layer via Merge.
type Settings struct {
	Timesheet  Timesheet   `json:"timesheet"`
	Individual OverrideMap `json:"individual,omitempty"`
}

// EventType describes a bookable service with a duration in minutes.
type EventType struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
}

// BusyInterval is an existing booking or externally synced calendar block.
// Every interval handed to this package blocks slots; filtering out
// cancelled or emergency bookings is the caller's job.
type BusyInterval struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Status  string    `json:"status"`
}

// Slot is one duration-sized candidate interval within a day's open hours.
type Slot struct {
	Time     string `json:"time"`
	Disabled bool   `json:"disabled"`
	Reason   Reason `json:"reason,omitempty"`
}
