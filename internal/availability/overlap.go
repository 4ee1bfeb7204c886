package availability

import "time"

// Interval overlap throughout this package is half-open: [start,end) ranges
// overlap iff start < otherEnd && end > otherStart. A slot that ends exactly
// when a break or booking starts is not blocked by it.

// OnBreak reports whether the slot [slotStart,slotEnd) in minutes overlaps
// any of the day's breaks. Breaks with unparseable times are skipped.
func OnBreak(slotStart, slotEnd int, breaks []BreakTime) bool {
	for _, b := range breaks {
		bStart := ParseClock(b.Start)
		bEnd := ParseClock(b.End)
		if bStart < 0 || bEnd < 0 {
			continue
		}
		if slotStart < bEnd && slotEnd > bStart {
			return true
		}
	}
	return false
}

// OverlapsBusy reports whether the absolute slot interval overlaps any busy
// interval that starts on the selected date. Busy lists are fetched for a
// whole range, so they are scoped per-day first: two bookings on different
// days can share the same wall-clock hour.
func OverlapsBusy(slotStart, slotEnd time.Time, selectedDate time.Time, busy []BusyInterval) bool {
	for _, b := range busy {
		if !SameLocalDate(b.StartAt.In(selectedDate.Location()), selectedDate) {
			continue
		}
		if slotStart.Before(b.EndAt) && slotEnd.After(b.StartAt) {
			return true
		}
	}
	return false
}

// InPast reports whether a slot starting at slotStart minutes on checkDate
// has already begun. Only today is ever in the past here: earlier dates are
// rejected at the date level, and future dates are never past.
func InPast(slotStart int, checkDate, now time.Time) bool {
	if !SameLocalDate(checkDate, now.In(checkDate.Location())) {
		return false
	}
	nowMinutes := now.In(checkDate.Location()).Hour()*60 + now.In(checkDate.Location()).Minute()
	return slotStart < nowMinutes
}
