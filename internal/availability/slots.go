package availability

import "time"

// Slots walks selectedDate's schedule in duration-sized steps and classifies
// each step. Slots are ordered ascending; a trailing step that would run
// past the day's end time is dropped entirely, never emitted truncated.
//
// Classification is priority-ordered with first match winning:
// break > booked > individual override > past. A slot on a break that is
// also in the past reports "break".
func Slots(eventType *EventType, selectedDate time.Time, settings *Settings, busy []BusyInterval, now time.Time) []Slot {
	if eventType == nil || selectedDate.IsZero() || settings == nil {
		return nil
	}
	day, ok := settings.Timesheet[DayName(selectedDate)]
	if !ok || !day.Enabled {
		return nil
	}

	duration := eventType.DurationMinutes
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}

	startMin := ParseClock(day.StartTime)
	endMin := ParseClock(day.EndTime)
	if startMin < 0 || endMin < 0 || endMin <= startMin {
		return nil
	}

	midnight := NormalizeDate(selectedDate)

	// Ordered predicate list; evaluation stops at the first match.
	checks := []struct {
		reason Reason
		match  func(slotStart, slotEnd int) bool
	}{
		{ReasonBreak, func(s, e int) bool {
			return OnBreak(s, e, day.Breaks)
		}},
		{ReasonBooked, func(s, e int) bool {
			return OverlapsBusy(
				midnight.Add(time.Duration(s)*time.Minute),
				midnight.Add(time.Duration(e)*time.Minute),
				selectedDate, busy)
		}},
		{ReasonUnavailable, func(s, e int) bool {
			return overrideBlocked(settings.Individual, selectedDate, s, e)
		}},
		{ReasonPast, func(s, e int) bool {
			return InPast(s, selectedDate, now)
		}},
	}

	var slots []Slot
	for slotStart := startMin; slotStart+duration <= endMin; slotStart += duration {
		slotEnd := slotStart + duration
		slot := Slot{Time: FormatMinutes(slotStart)}
		for _, check := range checks {
			if check.match(slotStart, slotEnd) {
				slot.Disabled = true
				slot.Reason = check.reason
				break
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

// overrideBlocked checks every integer hour the slot touches, from
// slotStart's hour through slotEnd's hour inclusive, so a sub-hour slot
// straddling an hour boundary respects overrides on either side.
func overrideBlocked(overrides OverrideMap, date time.Time, slotStart, slotEnd int) bool {
	if len(overrides) == 0 {
		return false
	}
	for hour := slotStart / 60; hour <= slotEnd/60; hour++ {
		if allowed, ok := overrides[OverrideKey(date, hour)]; ok && !allowed {
			return true
		}
	}
	return false
}
