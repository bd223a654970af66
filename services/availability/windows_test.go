// File: services/availability/windows_test.go
package availability

import (
	"testing"

	"slotsmith/models"
)

func mondayRules(pairs ...int) []models.AvailabilityRule {
	rules := make([]models.AvailabilityRule, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		rules = append(rules, models.AvailabilityRule{
			DayOfWeek:   1, // testDay is a Monday
			StartMinute: pairs[i],
			EndMinute:   pairs[i+1],
			Active:      true,
		})
	}
	return rules
}

func TestBuildFreeWindowsBasic(t *testing.T) {
	d := testDay()
	got := BuildFreeWindows(d, mondayRules(9*60, 17*60), nil, nil, "")
	assertWindows(t, got, windows(9*60, 17*60))
}

func TestBuildFreeWindowsWrongWeekday(t *testing.T) {
	d := testDay()
	rules := []models.AvailabilityRule{
		{DayOfWeek: 2, StartMinute: 9 * 60, EndMinute: 17 * 60, Active: true},
	}
	got := BuildFreeWindows(d, rules, nil, nil, "")
	assertWindows(t, got, nil)
}

func TestBuildFreeWindowsInactiveAndMalformedSkipped(t *testing.T) {
	d := testDay()
	rules := []models.AvailabilityRule{
		{DayOfWeek: 1, StartMinute: 9 * 60, EndMinute: 12 * 60, Active: false},
		{DayOfWeek: 1, StartMinute: 15 * 60, EndMinute: 14 * 60, Active: true},
		{DayOfWeek: 1, StartMinute: 13 * 60, EndMinute: 17 * 60, Active: true},
	}
	got := BuildFreeWindows(d, rules, nil, nil, "")
	assertWindows(t, got, windows(13*60, 17*60))
}

func TestBuildFreeWindowsTypeRulesReplaceGlobals(t *testing.T) {
	d := testDay()
	rules := []models.AvailabilityRule{
		{DayOfWeek: 1, StartMinute: 9 * 60, EndMinute: 17 * 60, Active: true},
		{DayOfWeek: 1, StartMinute: 10 * 60, EndMinute: 12 * 60, Active: true, AppointmentTypeID: "5"},
	}

	got := BuildFreeWindows(d, rules, nil, nil, "5")
	assertWindows(t, got, windows(10*60, 12*60))

	got = BuildFreeWindows(d, rules, nil, nil, "other")
	assertWindows(t, got, windows(9*60, 17*60))

	got = BuildFreeWindows(d, rules, nil, nil, "")
	assertWindows(t, got, windows(9*60, 17*60))
}

func TestBuildFreeWindowsTypeWithOnlyInactiveRulesFallsBack(t *testing.T) {
	d := testDay()
	rules := []models.AvailabilityRule{
		{DayOfWeek: 1, StartMinute: 9 * 60, EndMinute: 17 * 60, Active: true},
		{DayOfWeek: 1, StartMinute: 10 * 60, EndMinute: 12 * 60, Active: false, AppointmentTypeID: "5"},
	}
	got := BuildFreeWindows(d, rules, nil, nil, "5")
	assertWindows(t, got, windows(9*60, 17*60))
}

func TestBuildFreeWindowsSubtractsBlockedAndBusy(t *testing.T) {
	d := testDay()
	blocked := []models.BlockedPeriod{
		{Start: dt(d, 12, 0), End: dt(d, 13, 0)},
	}
	busy := []models.BusyInterval{
		{Start: dt(d, 15, 0), End: dt(d, 15, 30)},
	}
	got := BuildFreeWindows(d, mondayRules(9*60, 17*60), blocked, busy, "")
	assertWindows(t, got, windows(9*60, 12*60, 13*60, 15*60, 15*60+30, 17*60))
}

func TestBuildFreeWindowsFullDayBlocked(t *testing.T) {
	d := testDay()
	blocked := []models.BlockedPeriod{
		{Start: dt(d, 0, 0), End: dt(d.AddDate(0, 0, 1), 0, 0)},
	}
	got := BuildFreeWindows(d, mondayRules(9*60, 17*60), blocked, nil, "")
	assertWindows(t, got, nil)
}

func TestEventWindows(t *testing.T) {
	d := testDay()
	events := []models.CalendarEvent{
		{Start: dt(d, 13, 0), End: dt(d, 15, 0), Title: "Appointments"},
		{Start: dt(d.AddDate(0, 0, 1), 9, 0), End: dt(d.AddDate(0, 0, 1), 10, 0)},
		{Start: dt(d, 22, 0), End: dt(d.AddDate(0, 0, 1), 1, 0)},
	}
	got := EventWindows(events, d)
	assertWindows(t, got, windows(13*60, 15*60, 22*60, 24*60))
}
