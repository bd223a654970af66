package availability

import (
	"context"
	"strings"
	"time"

	"slotsmith/models"
)

// driveTimeLookback bounds how far back a preceding commitment is considered
// a plausible departure point for a window.
const driveTimeLookback = time.Hour

// DriveTimeLookup resolves drive time in minutes between two addresses.
type DriveTimeLookup func(ctx context.Context, origin, destination string) (int, error)

// TrimForDriveTime shrinks the start of each free window by the travel time
// needed to reach destination from wherever the previous commitment was.
//
// The origin for each window is the location of the day event with the
// latest end inside the one-hour lookback before the window start, falling
// back to homeAddress. Windows are left untouched when either origin or
// destination is empty (no penalty can be computed), and no lookup happens
// when origin equals destination case-insensitively.
//
// When the lookup fails and failOpen is set, drive time is treated as zero
// so a transient provider outage never blocks an otherwise-valid slot; with
// failOpen unset the window is dropped instead. Trimming only ever moves a
// start forward, capped at 23:59; windows fully consumed are dropped.
func TrimForDriveTime(
	ctx context.Context,
	windows []models.FreeWindow,
	day time.Time,
	dayEvents []models.CalendarEvent,
	destination, homeAddress string,
	lookup DriveTimeLookup,
	failOpen bool,
) []models.FreeWindow {
	if destination == "" {
		return windows
	}

	trimmed := make([]models.FreeWindow, 0, len(windows))
	for _, w := range windows {
		windowStart := time.Date(day.Year(), day.Month(), day.Day(), w.Start/60, w.Start%60, 0, 0, day.Location())
		origin := precedingLocation(dayEvents, windowStart)
		if origin == "" {
			origin = homeAddress
		}
		if origin == "" {
			trimmed = append(trimmed, w)
			continue
		}
		if strings.EqualFold(origin, destination) {
			trimmed = append(trimmed, w)
			continue
		}

		minutes, err := lookup(ctx, origin, destination)
		if err != nil {
			if !failOpen {
				continue
			}
			minutes = 0
		}
		newStart := w.Start + minutes
		if newStart > minutesPerDay-1 {
			newStart = minutesPerDay - 1
		}
		if newStart >= w.End {
			continue
		}
		trimmed = append(trimmed, models.FreeWindow{Start: newStart, End: w.End})
	}
	return trimmed
}

// precedingLocation finds the location of the most recent event plausibly
// preceding windowStart: the latest event end within the lookback window.
func precedingLocation(events []models.CalendarEvent, windowStart time.Time) string {
	lookbackCutoff := windowStart.Add(-driveTimeLookback)
	var best *models.CalendarEvent
	for i := range events {
		ev := &events[i]
		if ev.End.Before(lookbackCutoff) || ev.End.After(windowStart) {
			continue
		}
		if best == nil || ev.End.After(best.End) {
			best = ev
		}
	}
	if best == nil {
		return ""
	}
	return best.Location
}
