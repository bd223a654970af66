// File: database/repository/blocked/interface.go
package blockedRepo

import (
	"context"

	"slotsmith/database"
	"slotsmith/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BlockedPeriodRepository provides access to one-off closures.
type BlockedPeriodRepository interface {
	All(ctx context.Context) ([]models.BlockedPeriod, error)
	Create(ctx context.Context, period *models.BlockedPeriod) (string, error)
	Delete(ctx context.Context, id string) error
}

type mongoBlockedRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedRepo constructs a new MongoDB BlockedPeriodRepository.
func NewMongoBlockedRepo() BlockedPeriodRepository {
	db := database.MongoClient.Database("slotsmith")
	return &mongoBlockedRepo{
		coll: db.Collection("blocked_periods"),
	}
}
