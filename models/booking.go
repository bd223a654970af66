package models

import "time"

// Booking represents a confirmed booking record.
type Booking struct {
	ID                string    `bson:"id" json:"id"`
	AppointmentTypeID string    `bson:"appointment_type_id" json:"appointment_type_id"`
	Start             time.Time `bson:"start" json:"start"` // naive local datetime
	End               time.Time `bson:"end" json:"end"`
	GuestName         string    `bson:"guest_name" json:"guest_name"`
	GuestEmail        string    `bson:"guest_email" json:"guest_email"`
	GuestPhone        string    `bson:"guest_phone,omitempty" json:"guest_phone,omitempty"`
	Notes             string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Location          string    `bson:"location,omitempty" json:"location,omitempty"` // destination for admin-initiated types
	Status            string    `bson:"status" json:"status"`                         // "confirmed" | "cancelled"
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}

const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)
