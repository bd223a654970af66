package models

import "time"

// AppointmentType holds the bookable configuration for one kind of appointment.
type AppointmentType struct {
	ID                  string    `bson:"id" json:"id"`
	Name                string    `bson:"name" json:"name"`
	Description         string    `bson:"description,omitempty" json:"description,omitempty"`
	DurationMinutes     int       `bson:"duration_minutes" json:"duration_minutes"`
	BufferBeforeMinutes int       `bson:"buffer_before_minutes" json:"buffer_before_minutes"`
	BufferAfterMinutes  int       `bson:"buffer_after_minutes" json:"buffer_after_minutes"`

	// Location is the physical appointment address; empty when the
	// appointment is not travel-dependent.
	Location          string `bson:"location,omitempty" json:"location,omitempty"`
	RequiresDriveTime bool   `bson:"requires_drive_time" json:"requires_drive_time"`

	// CalendarID is the owner's calendar this type books against.
	CalendarID string `bson:"calendar_id" json:"calendar_id"`

	// Calendar-window mode: when enabled, slots are only offered inside
	// calendar events whose title matches CalendarWindowTitle exactly
	// (case-insensitive) on CalendarWindowCalendarID.
	CalendarWindowEnabled    bool   `bson:"calendar_window_enabled" json:"calendar_window_enabled"`
	CalendarWindowTitle      string `bson:"calendar_window_title,omitempty" json:"calendar_window_title,omitempty"`
	CalendarWindowCalendarID string `bson:"calendar_window_calendar_id,omitempty" json:"calendar_window_calendar_id,omitempty"`

	// AdminInitiated marks types whose travel destination is supplied at
	// query time rather than fixed on the type.
	AdminInitiated bool `bson:"admin_initiated" json:"admin_initiated"`

	Active    bool      `bson:"active" json:"active"`
	Color     string    `bson:"color,omitempty" json:"color,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// WindowCalendarID resolves the calendar searched in calendar-window mode,
// falling back to the type's own calendar.
func (at *AppointmentType) WindowCalendarID() string {
	if at.CalendarWindowCalendarID != "" {
		return at.CalendarWindowCalendarID
	}
	return at.CalendarID
}

// SchedulableType is the typed variant over appointment types: only
// admin-initiated types accept a per-query destination override.
type SchedulableType interface {
	Type() *AppointmentType
	// Destination resolves the effective travel destination for a query.
	Destination(override string) string
}

// StandardAppointmentType books against the type's fixed location and
// ignores any destination override.
type StandardAppointmentType struct {
	AppointmentType
}

func (t *StandardAppointmentType) Type() *AppointmentType { return &t.AppointmentType }

func (t *StandardAppointmentType) Destination(_ string) string { return t.Location }

// AdminInitiatedAppointmentType accepts the destination at query time.
type AdminInitiatedAppointmentType struct {
	AppointmentType
}

func (t *AdminInitiatedAppointmentType) Type() *AppointmentType { return &t.AppointmentType }

func (t *AdminInitiatedAppointmentType) Destination(override string) string {
	if override != "" {
		return override
	}
	return t.Location
}

// Schedulable wraps the stored record in its typed variant.
func (at AppointmentType) Schedulable() SchedulableType {
	if at.AdminInitiated {
		return &AdminInitiatedAppointmentType{AppointmentType: at}
	}
	return &StandardAppointmentType{AppointmentType: at}
}
