package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// A Monday well in the future relative to testNow.
	testMonday = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	testNow    = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
)

func mondaySettings(day DaySchedule) *Settings {
	return &Settings{Timesheet: Timesheet{"Mon": day}}
}

func TestSlotsMorningScheduleWithBreak(t *testing.T) {
	settings := mondaySettings(DaySchedule{
		Enabled:   true,
		StartTime: "09:00",
		EndTime:   "12:00",
		Breaks:    []BreakTime{{Start: "10:00", End: "10:30"}},
	})
	eventType := &EventType{ID: "et-1", Title: "Intro call", DurationMinutes: 30}

	slots := Slots(eventType, testMonday, settings, nil, testNow)

	require.Len(t, slots, 6)
	want := []Slot{
		{Time: "9:00 AM"},
		{Time: "9:30 AM"},
		{Time: "10:00 AM", Disabled: true, Reason: ReasonBreak},
		{Time: "10:30 AM"},
		{Time: "11:00 AM"},
		{Time: "11:30 AM"},
	}
	assert.Equal(t, want, slots)
}

func TestSlotsTrailingPartialSlotDropped(t *testing.T) {
	settings := mondaySettings(DaySchedule{
		Enabled: true, StartTime: "09:00", EndTime: "10:45",
	})
	eventType := &EventType{DurationMinutes: 30}

	slots := Slots(eventType, testMonday, settings, nil, testNow)

	// 9:00, 9:30, 10:00 fit; 10:30+30 would exceed 10:45 and is dropped,
	// not emitted disabled.
	require.Len(t, slots, 3)
	assert.Equal(t, "10:00 AM", slots[2].Time)
}

func TestSlotsExactFitFinalSlotIncluded(t *testing.T) {
	settings := mondaySettings(DaySchedule{
		Enabled: true, StartTime: "09:00", EndTime: "12:00",
	})
	eventType := &EventType{DurationMinutes: 60}

	slots := Slots(eventType, testMonday, settings, nil, testNow)

	// 11:00 ends exactly at 12:00 and must be included.
	require.Len(t, slots, 3)
	assert.Equal(t, "11:00 AM", slots[2].Time)
	assert.False(t, slots[2].Disabled)
}

func TestSlotsDurationFallback(t *testing.T) {
	settings := mondaySettings(DaySchedule{
		Enabled: true, StartTime: "09:00", EndTime: "11:00",
	})

	for _, duration := range []int{0, -15} {
		slots := Slots(&EventType{DurationMinutes: duration}, testMonday, settings, nil, testNow)
		assert.Len(t, slots, 4, "duration %d should fall back to 30-minute steps", duration)
	}
}

func TestSlotsBookedInterval(t *testing.T) {
	settings := mondaySettings(DaySchedule{
		Enabled: true, StartTime: "09:00", EndTime: "12:00",
	})
	eventType := &EventType{DurationMinutes: 30}
	busy := []BusyInterval{{
		StartAt: testMonday.Add(9 * time.Hour),
		EndAt:   testMonday.Add(9*time.Hour + 30*time.Minute),
		Status:  "confirmed",
	}}

	slots := Slots(eventType, testMonday, settings, busy, testNow)

	require.NotEmpty(t, slots)
	assert.True(t, slots[0].Disabled)
	assert.Equal(t, ReasonBooked, slots[0].Reason)
	assert.False(t, slots[1].Disabled, "only the overlapping slot is blocked")

	// The same wall-clock booking on a different date leaves this date alone.
	otherDay := []BusyInterval{{
		StartAt: testMonday.AddDate(0, 0, 1).Add(9 * time.Hour),
		EndAt:   testMonday.AddDate(0, 0, 1).Add(9*time.Hour + 30*time.Minute),
		Status:  "confirmed",
	}}
	slots = Slots(eventType, testMonday, settings, otherDay, testNow)
	assert.False(t, slots[0].Disabled)
}

func TestSlotsOverrideSpansEveryTouchedHour(t *testing.T) {
	settings := mondaySettings(DaySchedule{
		Enabled: true, StartTime: "09:30", EndTime: "15:00",
	})
	// Only hour 10 is overridden off; hours 9 and 11 are untouched.
	settings.Individual = OverrideMap{OverrideKey(testMonday, 10): false}
	eventType := &EventType{DurationMinutes: 90}

	slots := Slots(eventType, testMonday, settings, nil, testNow)

	// The 9:30–11:00 slot touches hours 9, 10 and 11 and must be disabled.
	require.NotEmpty(t, slots)
	assert.Equal(t, "9:30 AM", slots[0].Time)
	assert.True(t, slots[0].Disabled)
	assert.Equal(t, ReasonUnavailable, slots[0].Reason)
}

func TestSlotsPastOnlyAffectsToday(t *testing.T) {
	settings := mondaySettings(DaySchedule{
		Enabled: true, StartTime: "09:00", EndTime: "12:00",
	})
	eventType := &EventType{DurationMinutes: 30}

	// now is 10:15 on the selected date itself.
	now := testMonday.Add(10*time.Hour + 15*time.Minute)
	slots := Slots(eventType, testMonday, settings, nil, now)

	require.Len(t, slots, 6)
	assert.Equal(t, ReasonPast, slots[0].Reason) // 9:00
	assert.Equal(t, ReasonPast, slots[1].Reason) // 9:30
	assert.Equal(t, ReasonPast, slots[2].Reason) // 10:00
	assert.False(t, slots[3].Disabled, "10:30 has not started yet")
}

func TestSlotsClassificationPriority(t *testing.T) {
	// 10:00–10:30 is simultaneously on a break, booked, overridden off and
	// in the past. Break outranks everything.
	settings := mondaySettings(DaySchedule{
		Enabled:   true,
		StartTime: "09:00",
		EndTime:   "12:00",
		Breaks:    []BreakTime{{Start: "10:00", End: "10:30"}},
	})
	settings.Individual = OverrideMap{OverrideKey(testMonday, 10): false}
	busy := []BusyInterval{{
		StartAt: testMonday.Add(10 * time.Hour),
		EndAt:   testMonday.Add(10*time.Hour + 30*time.Minute),
		Status:  "confirmed",
	}}
	now := testMonday.Add(11 * time.Hour)
	eventType := &EventType{DurationMinutes: 30}

	slots := Slots(eventType, testMonday, settings, busy, now)

	require.Len(t, slots, 6)
	assert.Equal(t, ReasonBreak, slots[2].Reason, "break beats booked, override and past")

	// Without the break, booked wins over override and past.
	settings.Timesheet["Mon"] = DaySchedule{Enabled: true, StartTime: "09:00", EndTime: "12:00"}
	slots = Slots(eventType, testMonday, settings, busy, now)
	assert.Equal(t, ReasonBooked, slots[2].Reason)

	// Without the booking, override wins over past.
	slots = Slots(eventType, testMonday, settings, nil, now)
	assert.Equal(t, ReasonUnavailable, slots[2].Reason)
}

func TestSlotsStepSpacingNeverExceedsEnd(t *testing.T) {
	settings := mondaySettings(DaySchedule{
		Enabled: true, StartTime: "08:15", EndTime: "17:40",
	})
	for _, duration := range []int{15, 25, 45, 60, 90} {
		slots := Slots(&EventType{DurationMinutes: duration}, testMonday, settings, nil, testNow)
		start := ParseClock("08:15")
		end := ParseClock("17:40")
		for i := range slots {
			slotStart := start + i*duration
			if slotStart+duration > end {
				t.Fatalf("duration %d: slot %d exceeds end of day", duration, i)
			}
		}
		wantCount := (end - start) / duration
		assert.Len(t, slots, wantCount, "duration %d", duration)
	}
}

func TestSlotsFailClosed(t *testing.T) {
	enabled := mondaySettings(DaySchedule{Enabled: true, StartTime: "09:00", EndTime: "17:00"})
	eventType := &EventType{DurationMinutes: 30}

	assert.Nil(t, Slots(nil, testMonday, enabled, nil, testNow), "no event type")
	assert.Nil(t, Slots(eventType, time.Time{}, enabled, nil, testNow), "no date")
	assert.Nil(t, Slots(eventType, testMonday, nil, nil, testNow), "no settings")

	sunday := testMonday.AddDate(0, 0, -1)
	assert.Nil(t, Slots(eventType, sunday, enabled, nil, testNow), "missing day entry")

	disabled := mondaySettings(DaySchedule{Enabled: false, StartTime: "09:00", EndTime: "17:00"})
	assert.Nil(t, Slots(eventType, testMonday, disabled, nil, testNow), "disabled day")

	malformed := mondaySettings(DaySchedule{Enabled: true, StartTime: "morning", EndTime: "17:00"})
	assert.Nil(t, Slots(eventType, testMonday, malformed, nil, testNow), "malformed start time")

	inverted := mondaySettings(DaySchedule{Enabled: true, StartTime: "17:00", EndTime: "09:00"})
	assert.Nil(t, Slots(eventType, testMonday, inverted, nil, testNow), "end before start")
}
