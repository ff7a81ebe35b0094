// File: database/repository/window/interface.go
package windowRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"spritz/database"
	"spritz/models"
)

type WindowRepository interface {
	ReplaceForUser(ctx context.Context, userAddress string, windows []models.AvailabilityWindow) ([]models.AvailabilityWindow, error)
	GetByUser(ctx context.Context, userAddress string) ([]models.AvailabilityWindow, error)
	GetActiveByUser(ctx context.Context, userAddress string) ([]models.AvailabilityWindow, error)
	DeleteByID(ctx context.Context, userAddress, windowID string) error
}

type mongoWindowRepo struct {
	coll *mongo.Collection
}

// NewMongoWindowRepo constructs a new MongoDB WindowRepository.
func NewMongoWindowRepo() WindowRepository {
	db := database.MongoClient.Database("spritz")
	return &mongoWindowRepo{
		coll: db.Collection("availability_windows"),
	}
}
