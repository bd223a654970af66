// File: services/scheduling/engine.go
package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	appttypeRepo "slotsmith/database/repository/appttype"
	blockedRepo "slotsmith/database/repository/blocked"
	rulesRepo "slotsmith/database/repository/rules"
	"slotsmith/models"
	"slotsmith/services/availability"
	"slotsmith/services/calendar"
	"slotsmith/utils"
)

// DriveTimer resolves drive duration in minutes between two addresses.
type DriveTimer interface {
	MinutesBetween(ctx context.Context, origin, destination string) (int, error)
}

// Engine computes the bookable slots for an appointment type on a day.
type Engine interface {
	// ComputeSlots returns the bookable start times for typeID on day.
	// destinationOverride only applies to admin-initiated types. Unknown
	// or inactive types yield ErrUnknownAppointmentType.
	ComputeSlots(ctx context.Context, typeID string, day time.Time, destinationOverride string) ([]models.Slot, error)
}

// DefaultEngine wires the availability pipeline against live repositories
// and calendar/drive-time providers.
type DefaultEngine struct {
	Types   appttypeRepo.AppointmentTypeRepository
	Rules   rulesRepo.RuleRepository
	Blocked blockedRepo.BlockedPeriodRepository
	Busy    calendar.Provider
	Events  calendar.Provider
	Drive   DriveTimer

	HomeAddress         string
	MinAdvanceHours     int
	ConflictCalendarIDs []string
	DriveTimeFailOpen   bool

	// Now is swappable for tests; nil means time.Now.
	Now func() time.Time
}

func NewDefaultEngine(
	types appttypeRepo.AppointmentTypeRepository,
	rules rulesRepo.RuleRepository,
	blocked blockedRepo.BlockedPeriodRepository,
	provider calendar.Provider,
	drive DriveTimer,
	homeAddress string,
	minAdvanceHours int,
	conflictCalendarIDs []string,
	driveTimeFailOpen bool,
) *DefaultEngine {
	return &DefaultEngine{
		Types:               types,
		Rules:               rules,
		Blocked:             blocked,
		Busy:                provider,
		Events:              provider,
		Drive:               drive,
		HomeAddress:         homeAddress,
		MinAdvanceHours:     minAdvanceHours,
		ConflictCalendarIDs: conflictCalendarIDs,
		DriveTimeFailOpen:   driveTimeFailOpen,
	}
}

func (e *DefaultEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *DefaultEngine) ComputeSlots(ctx context.Context, typeID string, day time.Time, destinationOverride string) ([]models.Slot, error) {
	st, err := e.Types.GetActive(ctx, typeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAppointmentType, typeID)
		}
		return nil, fmt.Errorf("loading appointment type: %w", err)
	}
	at := st.Type()
	destination := st.Destination(destinationOverride)

	rules, err := e.Rules.ActiveRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading availability rules: %w", err)
	}
	blocked, err := e.Blocked.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading blocked periods: %w", err)
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	busy := e.fetchBusy(ctx, at, dayStart, dayEnd)

	// Calendar-window mode partitions the window calendar's events: titles
	// matching the configured marker define where slots may exist, everything
	// else counts as busy.
	var windowEvents []models.CalendarEvent
	if at.CalendarWindowEnabled {
		events, err := e.Events.EventsForDay(ctx, at.WindowCalendarID(), dayStart, dayEnd)
		if err != nil {
			utils.GetLogger().Warn("window calendar fetch failed, day yields no slots",
				zap.String("calendar", at.WindowCalendarID()),
				zap.Error(err))
		}
		marker := strings.TrimSpace(at.CalendarWindowTitle)
		for _, ev := range events {
			if strings.EqualFold(strings.TrimSpace(ev.Title), marker) {
				windowEvents = append(windowEvents, ev)
			} else {
				busy = append(busy, models.BusyInterval{Start: ev.Start, End: ev.End})
			}
		}
	}

	free := availability.BuildFreeWindows(day, rules, blocked, busy, typeID)
	if at.CalendarWindowEnabled {
		free = availability.IntersectWindows(free, availability.EventWindows(windowEvents, day))
	}

	if at.RequiresDriveTime && destination != "" {
		dayEvents, err := e.Events.EventsForDay(ctx, at.CalendarID, dayStart, dayEnd)
		if err != nil {
			utils.GetLogger().Warn("day events fetch failed, drive time falls back to home origin",
				zap.String("calendar", at.CalendarID),
				zap.Error(err))
			dayEvents = nil
		}
		free = availability.TrimForDriveTime(ctx, free, day, dayEvents, destination, e.HomeAddress,
			e.Drive.MinutesBetween, e.DriveTimeFailOpen)
	}

	starts := availability.SplitIntoSlots(free, at.DurationMinutes, at.BufferBeforeMinutes, at.BufferAfterMinutes)
	starts = availability.FilterByAdvanceNotice(starts, day, e.MinAdvanceHours, e.now())
	// Window order follows rule storage order, which is unsorted.
	sort.Ints(starts)

	slots := make([]models.Slot, 0, len(starts))
	for _, s := range starts {
		slots = append(slots, models.Slot{
			Value:   utils.FormatMinutes(s),
			Display: utils.FormatMinutesDisplay(s),
		})
	}
	return slots, nil
}

// fetchBusy collects freebusy intervals across the type's calendar and every
// configured conflict calendar. In calendar-window mode the window calendar
// is excluded: its events are partitioned separately so marker events do not
// block themselves. A provider failure degrades to no busy data rather than
// failing the whole query.
func (e *DefaultEngine) fetchBusy(ctx context.Context, at *models.AppointmentType, dayStart, dayEnd time.Time) []models.BusyInterval {
	skip := ""
	if at.CalendarWindowEnabled {
		skip = at.WindowCalendarID()
	}

	seen := make(map[string]bool)
	var calIDs []string
	for _, id := range append([]string{at.CalendarID}, e.ConflictCalendarIDs...) {
		if id == "" || id == skip || seen[id] {
			continue
		}
		seen[id] = true
		calIDs = append(calIDs, id)
	}
	if len(calIDs) == 0 {
		return nil
	}

	busy, err := e.Busy.BusyIntervals(ctx, calIDs, dayStart, dayEnd)
	if err != nil {
		utils.GetLogger().Warn("freebusy fetch failed, continuing without busy data",
			zap.Strings("calendars", calIDs),
			zap.Error(err))
		return nil
	}
	return busy
}
