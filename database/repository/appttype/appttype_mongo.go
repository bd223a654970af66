// File: database/repository/appttype/appttype_mongo.go
package appttypeRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotsmith/models"
)

func (r *mongoAppointmentTypeRepo) GetActive(ctx context.Context, id string) (models.SchedulableType, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var at models.AppointmentType
	err := r.coll.FindOne(ctx, bson.M{"id": id, "active": true}).Decode(&at)
	if err != nil {
		return nil, err
	}
	return at.Schedulable(), nil
}

func (r *mongoAppointmentTypeRepo) ListActive(ctx context.Context) ([]models.AppointmentType, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment types: %w", err)
	}
	defer cursor.Close(ctx)

	var types []models.AppointmentType
	if err := cursor.All(ctx, &types); err != nil {
		return nil, fmt.Errorf("failed to decode appointment types: %w", err)
	}
	return types, nil
}

func (r *mongoAppointmentTypeRepo) Create(ctx context.Context, at *models.AppointmentType) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if at.ID == "" {
		at.ID = uuid.New().String()
	}
	if at.CalendarID == "" {
		at.CalendarID = "primary"
	}
	at.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, at); err != nil {
		return "", fmt.Errorf("failed to insert appointment type: %w", err)
	}
	return at.ID, nil
}

func (r *mongoAppointmentTypeRepo) Update(ctx context.Context, at *models.AppointmentType) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": at.ID}, at)
	if err != nil {
		return fmt.Errorf("failed to update appointment type %s: %w", at.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAppointmentTypeRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete appointment type %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
