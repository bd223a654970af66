// Package calendar talks to the Google Calendar API over plain HTTP using a
// stored OAuth refresh token. It is the timezone boundary: Google returns
// UTC instants, everything handed to the scheduling engine is naive local
// time in the configured zone.
package calendar

import (
	"context"
	"time"

	"slotsmith/models"
)

// Provider exposes the two calendar capabilities the scheduling engine
// consumes. Implementations fail with an error; the engine degrades to an
// empty result rather than propagating.
type Provider interface {
	// BusyIntervals returns occupied ranges across the given calendars
	// between start and end (naive local datetimes).
	BusyIntervals(ctx context.Context, calendarIDs []string, start, end time.Time) ([]models.BusyInterval, error)
	// EventsForDay returns full event detail (title, location, time range)
	// for one calendar between start and end.
	EventsForDay(ctx context.Context, calendarID string, start, end time.Time) ([]models.CalendarEvent, error)
}
