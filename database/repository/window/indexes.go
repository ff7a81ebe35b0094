// File: database/repository/window/indexes.go
package windowRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"spritz/database"
)

// EnsureWindowIndexes creates the indexes availability lookups depend on.
func EnsureWindowIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := database.MongoClient.Database("spritz").Collection("availability_windows")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userAddress", Value: 1}, {Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "id", Value: 1}}},
	})
	return err
}
