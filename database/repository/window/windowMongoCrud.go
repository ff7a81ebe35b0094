// File: database/repository/window/windowMongoCrud.go
package windowRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"spritz/models"
)

// ReplaceForUser swaps out the host's entire window set atomically enough for
// our purposes: delete-then-insert inside one request-scoped timeout.
func (r *mongoWindowRepo) ReplaceForUser(ctx context.Context, userAddress string, windows []models.AvailabilityWindow) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"userAddress": userAddress}); err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(windows))
	for i := range windows {
		if windows[i].ID == "" {
			windows[i].ID = uuid.New().String()
		}
		windows[i].UserAddress = userAddress
		windows[i].CreatedAt = now
		windows[i].UpdatedAt = now
		docs[i] = windows[i]
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *mongoWindowRepo) GetByUser(ctx context.Context, userAddress string) ([]models.AvailabilityWindow, error) {
	return r.find(ctx, bson.M{"userAddress": userAddress})
}

func (r *mongoWindowRepo) GetActiveByUser(ctx context.Context, userAddress string) ([]models.AvailabilityWindow, error) {
	return r.find(ctx, bson.M{"userAddress": userAddress, "isActive": true})
}

func (r *mongoWindowRepo) DeleteByID(ctx context.Context, userAddress, windowID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": windowID, "userAddress": userAddress})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoWindowRepo) find(ctx context.Context, filter bson.M) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var windows []models.AvailabilityWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, err
	}
	return windows, nil
}
