package models

import "time"

// BusyInterval is an opaque external-calendar occupied range. Both ends are
// naive local datetimes, already normalized by the calendar boundary layer;
// the availability algebra performs no timezone conversion of its own.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CalendarEvent is a full-detail external calendar event. Used to match
// calendar-window titles and to locate the most recent preceding commitment
// for drive-time trimming.
type CalendarEvent struct {
	Start    time.Time `json:"start"` // naive local
	End      time.Time `json:"end"`
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
}
