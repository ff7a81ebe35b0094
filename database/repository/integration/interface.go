// File: database/repository/integration/interface.go
package integrationRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"spritz/database"
	"spritz/models"
)

type IntegrationRepository interface {
	GetByUser(ctx context.Context, userAddress string) (*models.CalendarIntegration, error)
	Upsert(ctx context.Context, integration models.CalendarIntegration) error
	UpdateTokens(ctx context.Context, userAddress, accessToken, refreshToken string, expiry time.Time) error
}

type mongoIntegrationRepo struct {
	coll *mongo.Collection
}

// NewMongoIntegrationRepo constructs a new MongoDB IntegrationRepository.
func NewMongoIntegrationRepo() IntegrationRepository {
	db := database.MongoClient.Database("spritz")
	return &mongoIntegrationRepo{
		coll: db.Collection("calendar_integrations"),
	}
}
