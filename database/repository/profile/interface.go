// File: database/repository/profile/interface.go
package profileRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"spritz/database"
	"spritz/models"
)

type ProfileRepository interface {
	GetByUser(ctx context.Context, userAddress string) (*models.SchedulingProfile, error)
	Upsert(ctx context.Context, profile models.SchedulingProfile) error
}

type mongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo constructs a new MongoDB ProfileRepository.
func NewMongoProfileRepo() ProfileRepository {
	db := database.MongoClient.Database("spritz")
	return &mongoProfileRepo{
		coll: db.Collection("scheduling_profiles"),
	}
}
