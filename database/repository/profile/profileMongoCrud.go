// File: database/repository/profile/profileMongoCrud.go
package profileRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spritz/models"
)

// GetByUser returns nil (no error) when the host has never configured
// scheduling; an absent profile is not a failure.
func (r *mongoProfileRepo) GetByUser(ctx context.Context, userAddress string) (*models.SchedulingProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.SchedulingProfile
	err := r.coll.FindOne(ctx, bson.M{"userAddress": userAddress}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoProfileRepo) Upsert(ctx context.Context, profile models.SchedulingProfile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	profile.UpdatedAt = time.Now().UTC()
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"userAddress": profile.UserAddress}, profile, opts)
	return err
}
