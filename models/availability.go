package models

import "time"

// AvailabilityRule is a recurring weekly availability window.
// An empty AppointmentTypeID marks a global rule; rules carrying a type id
// replace (not augment) the global rules for that type.
type AvailabilityRule struct {
	ID                string    `bson:"id" json:"id"`
	DayOfWeek         int       `bson:"day_of_week" json:"day_of_week"`                         // 0=Sunday .. 6=Saturday, matching time.Weekday
	StartMinute       int       `bson:"start_minute" json:"start_minute"`                       // minutes from midnight
	EndMinute         int       `bson:"end_minute" json:"end_minute"`                           // minutes from midnight, must be > StartMinute
	Active            bool      `bson:"active" json:"active"`
	AppointmentTypeID string    `bson:"appointment_type_id,omitempty" json:"appointment_type_id,omitempty"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}

// BlockedPeriod is an explicit one-off closure. It may span multiple days.
type BlockedPeriod struct {
	ID        string    `bson:"id" json:"id"`
	Start     time.Time `bson:"start" json:"start"` // naive local datetime
	End       time.Time `bson:"end" json:"end"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// FreeWindow is a contiguous span of availability on a single date,
// after closures have been applied but before slot splitting.
type FreeWindow struct {
	Start int `json:"start"` // minutes from midnight
	End   int `json:"end"`
}

// Slot is a single bookable start time.
type Slot struct {
	Value   string `json:"value"`   // "HH:MM" 24-hour
	Display string `json:"display"` // e.g., "3:00 PM"
}
