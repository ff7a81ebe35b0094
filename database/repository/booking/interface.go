// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"spritz/database"
	"spritz/models"
)

type BookingRepository interface {
	Insert(ctx context.Context, b models.Booking) (models.Booking, error)
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	GetActiveInRange(ctx context.Context, hostAddress string, from, to time.Time) ([]models.Booking, error)
	HasOverlapping(ctx context.Context, hostAddress string, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, bookingID, status string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("spritz")
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
