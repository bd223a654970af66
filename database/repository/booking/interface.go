// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"slotsmith/database"
	"slotsmith/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists confirmed bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	// FindOverlap returns a confirmed booking overlapping [start, end),
	// or nil when the range is clear.
	FindOverlap(ctx context.Context, start, end time.Time) (*models.Booking, error)
	Cancel(ctx context.Context, id string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("slotsmith")
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
