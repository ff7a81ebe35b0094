// File: database/repository/integration/integrationMongoCrud.go
package integrationRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spritz/models"
)

// GetByUser returns nil (no error) when the host has no connected calendar.
func (r *mongoIntegrationRepo) GetByUser(ctx context.Context, userAddress string) (*models.CalendarIntegration, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var in models.CalendarIntegration
	err := r.coll.FindOne(ctx, bson.M{"userAddress": userAddress}).Decode(&in)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *mongoIntegrationRepo) Upsert(ctx context.Context, integration models.CalendarIntegration) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	integration.UpdatedAt = time.Now().UTC()
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"userAddress": integration.UserAddress}, integration, opts)
	return err
}

// UpdateTokens persists a refreshed token set. Best-effort callers ignore the
// returned error; a stale stored token only costs a refresh on the next fetch.
func (r *mongoIntegrationRepo) UpdateTokens(ctx context.Context, userAddress, accessToken, refreshToken string, expiry time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"accessToken": accessToken,
		"tokenExpiry": expiry,
		"updatedAt":   time.Now().UTC(),
	}
	if refreshToken != "" {
		set["refreshToken"] = refreshToken
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"userAddress": userAddress}, bson.M{"$set": set})
	return err
}
