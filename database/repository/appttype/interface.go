// File: database/repository/appttype/interface.go
package appttypeRepo

import (
	"context"

	"slotsmith/database"
	"slotsmith/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentTypeRepository provides access to appointment type configuration.
type AppointmentTypeRepository interface {
	// GetActive resolves an active type into its schedulable variant.
	GetActive(ctx context.Context, id string) (models.SchedulableType, error)
	ListActive(ctx context.Context) ([]models.AppointmentType, error)
	Create(ctx context.Context, at *models.AppointmentType) (string, error)
	Update(ctx context.Context, at *models.AppointmentType) error
	Delete(ctx context.Context, id string) error
}

type mongoAppointmentTypeRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentTypeRepo constructs a new MongoDB AppointmentTypeRepository.
func NewMongoAppointmentTypeRepo() AppointmentTypeRepository {
	db := database.MongoClient.Database("slotsmith")
	return &mongoAppointmentTypeRepo{
		coll: db.Collection("appointment_types"),
	}
}
