// File: services/scheduling/engine_test.go
package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"slotsmith/models"
)

type fakeTypeRepo struct {
	types map[string]models.AppointmentType
}

func (f *fakeTypeRepo) GetActive(_ context.Context, id string) (models.SchedulableType, error) {
	at, ok := f.types[id]
	if !ok || !at.Active {
		return nil, mongo.ErrNoDocuments
	}
	return at.Schedulable(), nil
}

func (f *fakeTypeRepo) ListActive(context.Context) ([]models.AppointmentType, error) {
	return nil, nil
}
func (f *fakeTypeRepo) Create(context.Context, *models.AppointmentType) (string, error) {
	return "", nil
}
func (f *fakeTypeRepo) Update(context.Context, *models.AppointmentType) error { return nil }
func (f *fakeTypeRepo) Delete(context.Context, string) error                  { return nil }

type fakeRuleRepo struct {
	rules []models.AvailabilityRule
}

func (f *fakeRuleRepo) ActiveRules(context.Context) ([]models.AvailabilityRule, error) {
	return f.rules, nil
}
func (f *fakeRuleRepo) Create(context.Context, *models.AvailabilityRule) (string, error) {
	return "", nil
}
func (f *fakeRuleRepo) Update(context.Context, *models.AvailabilityRule) error { return nil }
func (f *fakeRuleRepo) Delete(context.Context, string) error                   { return nil }
func (f *fakeRuleRepo) GetByID(context.Context, string) (*models.AvailabilityRule, error) {
	return nil, mongo.ErrNoDocuments
}

type fakeBlockedRepo struct {
	periods []models.BlockedPeriod
}

func (f *fakeBlockedRepo) All(context.Context) ([]models.BlockedPeriod, error) {
	return f.periods, nil
}
func (f *fakeBlockedRepo) Create(context.Context, *models.BlockedPeriod) (string, error) {
	return "", nil
}
func (f *fakeBlockedRepo) Delete(context.Context, string) error { return nil }

type fakeProvider struct {
	busy      []models.BusyInterval
	busyErr   error
	busyCalls [][]string
	// events per calendar id
	events    map[string][]models.CalendarEvent
	eventsErr error
}

func (f *fakeProvider) BusyIntervals(_ context.Context, calendarIDs []string, _, _ time.Time) ([]models.BusyInterval, error) {
	f.busyCalls = append(f.busyCalls, calendarIDs)
	if f.busyErr != nil {
		return nil, f.busyErr
	}
	return f.busy, nil
}

func (f *fakeProvider) EventsForDay(_ context.Context, calendarID string, _, _ time.Time) ([]models.CalendarEvent, error) {
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	return f.events[calendarID], nil
}

type fakeDrive struct {
	minutes int
	err     error
	calls   int
}

func (f *fakeDrive) MinutesBetween(context.Context, string, string) (int, error) {
	f.calls++
	return f.minutes, f.err
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(d time.Time, h, min int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), h, min, 0, 0, d.Location())
}

// rule on every weekday so date choice does not matter per test.
func allWeekRules(startMin, endMin int) []models.AvailabilityRule {
	rules := make([]models.AvailabilityRule, 0, 7)
	for dow := 0; dow < 7; dow++ {
		rules = append(rules, models.AvailabilityRule{
			ID:          "r" + string(rune('0'+dow)),
			DayOfWeek:   dow,
			StartMinute: startMin,
			EndMinute:   endMin,
			Active:      true,
		})
	}
	return rules
}

func newEngine(types *fakeTypeRepo, rules *fakeRuleRepo, blocked *fakeBlockedRepo, provider *fakeProvider, drive *fakeDrive) *DefaultEngine {
	eng := NewDefaultEngine(types, rules, blocked, provider, drive,
		"1 Home Base Rd", 0, nil, true)
	// Far in the past so advance notice never interferes unless a test
	// overrides Now.
	eng.Now = func() time.Time { return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC) }
	return eng
}

func slotValues(slots []models.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Value)
	}
	return out
}

func assertValues(t *testing.T, got []models.Slot, want ...string) {
	t.Helper()
	vals := slotValues(got)
	if len(vals) != len(want) {
		t.Fatalf("expected %v, got %v", want, vals)
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, vals)
		}
	}
}

func TestComputeSlotsHappyPath(t *testing.T) {
	types := &fakeTypeRepo{types: map[string]models.AppointmentType{
		"consult": {ID: "consult", DurationMinutes: 60, CalendarID: "primary", Active: true},
	}}
	eng := newEngine(types, &fakeRuleRepo{rules: allWeekRules(9*60, 12*60)},
		&fakeBlockedRepo{}, &fakeProvider{}, &fakeDrive{})

	slots, err := eng.ComputeSlots(context.Background(), "consult", day(2025, time.March, 3), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, slots, "09:00", "10:00", "11:00")
	if slots[0].Display != "9:00 AM" {
		t.Fatalf("expected display 9:00 AM, got %q", slots[0].Display)
	}
}

func TestComputeSlotsUnknownType(t *testing.T) {
	eng := newEngine(&fakeTypeRepo{types: map[string]models.AppointmentType{}},
		&fakeRuleRepo{}, &fakeBlockedRepo{}, &fakeProvider{}, &fakeDrive{})

	_, err := eng.ComputeSlots(context.Background(), "ghost", day(2025, time.March, 3), "")
	if !errors.Is(err, ErrUnknownAppointmentType) {
		t.Fatalf("expected ErrUnknownAppointmentType, got %v", err)
	}
}

func TestComputeSlotsInactiveTypeIsUnknown(t *testing.T) {
	types := &fakeTypeRepo{types: map[string]models.AppointmentType{
		"retired": {ID: "retired", DurationMinutes: 30, Active: false},
	}}
	eng := newEngine(types, &fakeRuleRepo{rules: allWeekRules(9*60, 17*60)},
		&fakeBlockedRepo{}, &fakeProvider{}, &fakeDrive{})

	_, err := eng.ComputeSlots(context.Background(), "retired", day(2025, time.March, 3), "")
	if !errors.Is(err, ErrUnknownAppointmentType) {
		t.Fatalf("expected ErrUnknownAppointmentType, got %v", err)
	}
}

func TestComputeSlotsBusySubtracted(t *testing.T) {
	d := day(2025, time.March, 3)
	types := &fakeTypeRepo{types: map[string]models.AppointmentType{
		"consult": {ID: "consult", DurationMinutes: 60, CalendarID: "primary", Active: true},
	}}
	provider := &fakeProvider{busy: []models.BusyInterval{
		{Start: at(d, 10, 0), End: at(d, 11, 0)},
	}}
	eng := newEngine(types, &fakeRuleRepo{rules: allWeekRules(9*60, 13*60)},
		&fakeBlockedRepo{}, provider, &fakeDrive{})

	slots, err := eng.ComputeSlots(context.Background(), "consult", d, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, slots, "09:00", "11:00", "12:00")
}

func TestComputeSlotsFreebusyFailureDegrades(t *testing.T) {
	types := &fakeTypeRepo{types: map[string]models.AppointmentType{
		"consult": {ID: "consult", DurationMinutes: 60, CalendarID: "primary", Active: true},
	}}
	provider := &fakeProvider{busyErr: errors.New("upstream down")}
	eng := newEngine(types, &fakeRuleRepo{rules: allWeekRules(9*60, 11*60)},
		&fakeBlockedRepo{}, provider, &fakeDrive{})

	slots, err := eng.ComputeSlots(context.Background(), "consult", day(2025, time.March, 3), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, slots, "09:00", "10:00")
}

func TestComputeSlotsConflictCalendarsQueried(t *testing.T) {
	types := &fakeTypeRepo{types: map[string]models.AppointmentType{
		"consult": {ID: "consult", DurationMinutes: 60, CalendarID: "primary", Active: true},
	}}
	provider := &fakeProvider{}
	eng := newEngine(types, &fakeRuleRepo{rules: allWeekRules(9*60, 11*60)},
		&fakeBlockedRepo{}, provider, &fakeDrive{})
	eng.ConflictCalendarIDs = []string{"family", "primary"}

	if _, err := eng.ComputeSlots(context.Background(), "consult", day(2025, time.March, 3), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(provider.busyCalls) != 1 {
		t.Fatalf("expected one freebusy call, got %d", len(provider.busyCalls))
	}
	got := provider.busyCalls[0]
	if len(got) != 2 || got[0] != "primary" || got[1] != "family" {
		t.Fatalf("expected deduplicated [primary family], got %v", got)
	}
}

func TestComputeSlotsCalendarWindowIntersection(t *testing.T) {
	d := day(2025, time.March, 3)
	types := &fakeTypeRepo{types: map[string]models.AppointmentType{
		"office": {
			ID: "office", DurationMinutes: 60, CalendarID: "primary", Active: true,
			CalendarWindowEnabled: true, CalendarWindowTitle: "Office Hours",
		},
	}}
	provider := &fakeProvider{events: map[string][]models.CalendarEvent{
		"primary": {
			{Start: at(d, 13, 0), End: at(d, 15, 0), Title: "office hours"},
			{Start: at(d, 9, 30), End: at(d, 10, 30), Title: "Dentist"},
		},
	}}
	eng := newEngine(types, &fakeRuleRepo{rules: allWeekRules(9*60, 17*60)},
		&fakeBlockedRepo{}, provider, &fakeDrive{})

	slots, err := eng.ComputeSlots(context.Background(), "office", d, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Rule window 09:00-17:00 intersected with the matching event 13:00-15:00.
	assertValues(t, slots, "13:00", "14:00")
	// The window calendar must not be part of the freebusy query.
	if len(provider.busyCalls) != 0 {
		t.Fatalf("expected no freebusy calls, got %v", provider.busyCalls)
	}
}

func TestComputeSlotsCalendarWindowNonMatchingEventBlocks(t *testing.T) {
	d := day(2025, time.March, 3)
	types := &fakeTypeRepo{types: map[string]models.AppointmentType{
		"office": {
			ID: "office", DurationMinutes: 60, CalendarID: "primary", Active: true,
			CalendarWindowEnabled: true, CalendarWindowTitle: "Office Hours",
		},
	}}
	provider := &fakeProvider{events: map[string][]models.CalendarEvent{
		"primary": {
			{Start: at(d, 9, 0), End: at(d, 12, 0), Title: "Office Hours"},
			{Start: at(d, 10, 0), End: at(d, 11, 0), Title: "Standup"},
		},
	}}
	eng := newEngine(types, &fakeRuleRepo{rules: allWeekRules(9*60, 17*60)},
		&fakeBlockedRepo{}, provider, &fakeDrive{})

	slots, err := eng.ComputeSlots(context.Background(), "office", d, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, slots, "09:00", "11:00")
}

func TestComputeSlotsCalendarWindowNoMatchesMeansNoSlots(t *testing.T) {
	d := day(2025, time.March, 3)
	types := &fakeTypeRepo{types: map[string]models.AppointmentType{
		"office": {
			ID: "office", DurationMinutes: 60, CalendarID: "primary", Active: true,
			CalendarWindowEnabled: true, CalendarWindowTitle: "Office Hours",
		},
	}}
	eng := newEngine(types, &fakeRuleRepo{rules: allWeekRules(9*60, 17*60)},
		&fakeBlockedRepo{}, &fakeProvider{}, &fakeDrive{})

	slots, err := eng.ComputeSlots(context.Background(), "office", d, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots without a matching window event, got %v", slotValues(slots))
	}
}

func TestComputeSlotsDriveTimeTrimsStart(t *testing.T) {
	d := day(2025, time.March, 3)
	types := &fakeTypeRepo{types: map[string]models.AppointmentType{
		"house-call": {
			ID: "house-call", DurationMinutes: 60, CalendarID: "primary", Active: true,
			RequiresDriveTime: true, Location: "456 Oak Ave",
		},
	}}
	provider := &fakeProvider{events: map[string][]models.CalendarEvent{
		"primary": {
			{Start: at(d, 10, 0), End: at(d, 10, 45), Title: "Visit", Location: "123 Main St"},
		},
	}}
	drive := &fakeDrive{minutes: 20}
	eng := newEngine(types, &fakeRuleRepo{rules: allWeekRules(11*60, 14*60)},
		&fakeBlockedRepo{}, provider, drive)

	slots, err := eng.ComputeSlots(context.Background(), "house-call", d, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 11:00-14:00 trimmed to 11:20-14:00, 60-minute appointments.
	assertValues(t, slots, "11:20", "12:20", "13:20")
	if drive.calls != 1 {
		t.Fatalf("expected one drive time lookup, got %d", drive.calls)
	}
}

func TestComputeSlotsDriveTimeFailOpen(t *testing.T) {
	d := day(2025, time.March, 3)
	types := &fakeTypeRepo{types: map[string]models.AppointmentType{
		"house-call": {
			ID: "house-call", DurationMinutes: 60, CalendarID: "primary", Active: true,
			RequiresDriveTime: true, Location: "456 Oak Ave",
		},
	}}
	drive := &fakeDrive{err: errors.New("matrix down")}
	eng := newEngine(types, &fakeRuleRepo{rules: allWeekRules(11*60, 13*60)},
		&fakeBlockedRepo{}, &fakeProvider{}, drive)

	slots, err := eng.ComputeSlots(context.Background(), "house-call", d, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, slots, "11:00", "12:00")
}

func TestComputeSlotsDestinationOverrideOnlyForAdminTypes(t *testing.T) {
	d := day(2025, time.March, 3)
	rules := &fakeRuleRepo{rules: allWeekRules(11*60, 14*60)}
	provider := &fakeProvider{}
	drive := &fakeDrive{minutes: 30}

	types := &fakeTypeRepo{types: map[string]models.AppointmentType{
		"standard": {
			ID: "standard", DurationMinutes: 60, CalendarID: "primary", Active: true,
			RequiresDriveTime: true,
		},
		"admin": {
			ID: "admin", DurationMinutes: 60, CalendarID: "primary", Active: true,
			RequiresDriveTime: true, AdminInitiated: true,
		},
	}}
	eng := newEngine(types, rules, &fakeBlockedRepo{}, provider, drive)

	// Standard type ignores the override; with no fixed location there is
	// no destination and no trimming.
	slots, err := eng.ComputeSlots(context.Background(), "standard", d, "456 Oak Ave")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, slots, "11:00", "12:00", "13:00")
	if drive.calls != 0 {
		t.Fatalf("expected no drive lookups for standard type, got %d", drive.calls)
	}

	slots, err = eng.ComputeSlots(context.Background(), "admin", d, "456 Oak Ave")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, slots, "11:30", "12:30")
	if drive.calls != 1 {
		t.Fatalf("expected one drive lookup for admin type, got %d", drive.calls)
	}
}

func TestComputeSlotsAdvanceNotice(t *testing.T) {
	d := day(2025, time.March, 3)
	types := &fakeTypeRepo{types: map[string]models.AppointmentType{
		"consult": {ID: "consult", DurationMinutes: 60, CalendarID: "primary", Active: true},
	}}
	eng := newEngine(types, &fakeRuleRepo{rules: allWeekRules(9*60, 12*60)},
		&fakeBlockedRepo{}, &fakeProvider{}, &fakeDrive{})
	eng.MinAdvanceHours = 2
	eng.Now = func() time.Time { return at(d, 8, 30) }

	slots, err := eng.ComputeSlots(context.Background(), "consult", d, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, slots, "11:00")
}

func TestComputeSlotsOrderedAcrossUnorderedRules(t *testing.T) {
	d := day(2025, time.March, 3) // a Monday
	types := &fakeTypeRepo{types: map[string]models.AppointmentType{
		"consult": {ID: "consult", DurationMinutes: 60, CalendarID: "primary", Active: true},
	}}
	// Afternoon rule stored before the morning rule.
	rules := &fakeRuleRepo{rules: []models.AvailabilityRule{
		{ID: "pm", DayOfWeek: 1, StartMinute: 14 * 60, EndMinute: 16 * 60, Active: true},
		{ID: "am", DayOfWeek: 1, StartMinute: 9 * 60, EndMinute: 11 * 60, Active: true},
	}}
	eng := newEngine(types, rules, &fakeBlockedRepo{}, &fakeProvider{}, &fakeDrive{})

	slots, err := eng.ComputeSlots(context.Background(), "consult", d, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, slots, "09:00", "10:00", "14:00", "15:00")
}

func TestComputeSlotsNoRulesForDay(t *testing.T) {
	d := day(2025, time.March, 3) // a Monday
	types := &fakeTypeRepo{types: map[string]models.AppointmentType{
		"consult": {ID: "consult", DurationMinutes: 60, CalendarID: "primary", Active: true},
	}}
	rules := &fakeRuleRepo{rules: []models.AvailabilityRule{
		{ID: "sat", DayOfWeek: 6, StartMinute: 9 * 60, EndMinute: 17 * 60, Active: true},
	}}
	eng := newEngine(types, rules, &fakeBlockedRepo{}, &fakeProvider{}, &fakeDrive{})

	slots, err := eng.ComputeSlots(context.Background(), "consult", d, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on an unscheduled day, got %v", slotValues(slots))
	}
}
