// File: database/repository/blocked/blocked_mongo.go
package blockedRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotsmith/models"
)

func (r *mongoBlockedRepo) All(ctx context.Context) ([]models.BlockedPeriod, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocked periods: %w", err)
	}
	defer cursor.Close(ctx)

	var periods []models.BlockedPeriod
	if err := cursor.All(ctx, &periods); err != nil {
		return nil, fmt.Errorf("failed to decode blocked periods: %w", err)
	}
	return periods, nil
}

func (r *mongoBlockedRepo) Create(ctx context.Context, period *models.BlockedPeriod) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if period.ID == "" {
		period.ID = uuid.New().String()
	}
	period.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, period); err != nil {
		return "", fmt.Errorf("failed to insert blocked period: %w", err)
	}
	return period.ID, nil
}

func (r *mongoBlockedRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete blocked period %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
