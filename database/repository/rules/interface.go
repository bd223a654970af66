// File: database/repository/rules/interface.go
package rulesRepo

import (
	"context"

	"slotsmith/database"
	"slotsmith/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RuleRepository provides access to availability rules. The scheduling
// engine only reads; create/update/delete serve the admin API.
type RuleRepository interface {
	ActiveRules(ctx context.Context) ([]models.AvailabilityRule, error)
	Create(ctx context.Context, rule *models.AvailabilityRule) (string, error)
	Update(ctx context.Context, rule *models.AvailabilityRule) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.AvailabilityRule, error)
}

type mongoRuleRepo struct {
	coll *mongo.Collection
}

// NewMongoRuleRepo constructs a new MongoDB RuleRepository.
func NewMongoRuleRepo() RuleRepository {
	db := database.MongoClient.Database("slotsmith")
	return &mongoRuleRepo{
		coll: db.Collection("availability_rules"),
	}
}
