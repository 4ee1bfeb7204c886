package availability

import "time"

// DateAvailable reduces a whole date to a single bookable-or-not signal,
// used to gray out calendar day cells. It short-circuits on cheap checks
// (day disabled, date already gone, every hour overridden off) before
// falling back to a full slot simulation.
//
// Today is never rejected by the past-date check even when some of its
// hours have gone; the slot simulation accounts for those.
func DateAvailable(date time.Time, settings *Settings, eventType *EventType, busy []BusyInterval, now time.Time) bool {
	if settings == nil || len(settings.Timesheet) == 0 || eventType == nil {
		return false
	}
	day, ok := settings.Timesheet[DayName(date)]
	if !ok || !day.Enabled {
		return false
	}
	if NormalizeDate(date).Before(NormalizeDate(now.In(date.Location()))) {
		return false
	}
	if len(settings.Individual) > 0 && allHoursBlocked(settings.Individual, date, day) {
		return false
	}
	for _, slot := range Slots(eventType, date, settings, busy, now) {
		if !slot.Disabled {
			return true
		}
	}
	return false
}

// allHoursBlocked reports whether every hour of the day's open range is
// explicitly overridden off. A mix of overridden and untouched hours does
// not qualify; those dates still go through slot simulation.
func allHoursBlocked(overrides OverrideMap, date time.Time, day DaySchedule) bool {
	startMin := ParseClock(day.StartTime)
	endMin := ParseClock(day.EndTime)
	if startMin < 0 || endMin < 0 {
		return false
	}
	startHour, endHour := startMin/60, endMin/60
	if endHour <= startHour {
		return false
	}
	for hour := startHour; hour < endHour; hour++ {
		allowed, ok := overrides[OverrideKey(date, hour)]
		if !ok || allowed {
			return false
		}
	}
	return true
}
