package availability

import (
	"time"

	"slotsmith/models"
)

// BuildFreeWindows resolves the applicable rule set for day, converts it to
// time-of-day windows and subtracts blocked periods and busy intervals.
//
// Rule scope: when appointmentTypeID is non-empty and any active rule is
// owned by that type, only that type's rules apply: type-specific rules
// replace global rules entirely, they do not augment them. Otherwise global
// rules (rules with no owning type) apply.
//
// A day with no matching rule returns an empty window list immediately: a
// day that was never available is distinct from a day whose rules were fully
// consumed by closures, even though both yield zero slots.
func BuildFreeWindows(
	day time.Time,
	rules []models.AvailabilityRule,
	blockedPeriods []models.BlockedPeriod,
	busyIntervals []models.BusyInterval,
	appointmentTypeID string,
) []models.FreeWindow {
	scoped := resolveRuleScope(rules, appointmentTypeID)

	weekday := int(day.Weekday())
	var windows []models.FreeWindow
	for _, r := range scoped {
		if r.DayOfWeek != weekday {
			continue
		}
		// A malformed rule (start >= end) contributes nothing rather than
		// poisoning the day's other rules.
		if r.StartMinute >= r.EndMinute {
			continue
		}
		windows = append(windows, models.FreeWindow{Start: r.StartMinute, End: r.EndMinute})
	}
	if len(windows) == 0 {
		return nil
	}

	occupied := make([]models.BusyInterval, 0, len(blockedPeriods)+len(busyIntervals))
	for _, bp := range blockedPeriods {
		occupied = append(occupied, models.BusyInterval{Start: bp.Start, End: bp.End})
	}
	windows = SubtractIntervals(windows, occupied, day)
	windows = SubtractIntervals(windows, busyIntervals, day)
	return windows
}

// EventWindows converts calendar events into positive time-of-day windows
// on day, clipping events that spill past midnight. Events entirely outside
// the day contribute nothing.
func EventWindows(events []models.CalendarEvent, day time.Time) []models.FreeWindow {
	var windows []models.FreeWindow
	for _, ev := range events {
		start, end, ok := clipToDay(ev.Start, ev.End, day)
		if !ok {
			continue
		}
		windows = append(windows, models.FreeWindow{Start: start, End: end})
	}
	return windows
}

func resolveRuleScope(rules []models.AvailabilityRule, appointmentTypeID string) []models.AvailabilityRule {
	var scoped []models.AvailabilityRule
	if appointmentTypeID != "" {
		for _, r := range rules {
			if r.Active && r.AppointmentTypeID == appointmentTypeID {
				scoped = append(scoped, r)
			}
		}
		if len(scoped) > 0 {
			return scoped
		}
	}
	for _, r := range rules {
		if r.Active && r.AppointmentTypeID == "" {
			scoped = append(scoped, r)
		}
	}
	return scoped
}
