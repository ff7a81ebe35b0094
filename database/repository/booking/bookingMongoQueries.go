// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"spritz/models"
)

// GetActiveInRange returns non-cancelled bookings whose interval intersects
// [from, to). A booking starting before `from` but running into the range
// still counts, hence the widened scheduledAt lower bound.
func (r *mongoBookingRepo) GetActiveInRange(ctx context.Context, hostAddress string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// No booking is longer than a day; widening by 24h keeps the filter on
	// the indexed scheduledAt field instead of a computed end time.
	filter := bson.M{
		"hostAddress": hostAddress,
		"status":      bson.M{"$ne": models.BookingStatusCancelled},
		"scheduledAt": bson.M{
			"$gte": from.Add(-24 * time.Hour),
			"$lt":  to,
		},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var all []models.Booking
	if err := cursor.All(ctx, &all); err != nil {
		return nil, err
	}

	bookings := all[:0]
	for _, b := range all {
		if b.End().After(from) {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

// HasOverlapping reports whether any non-cancelled booking for the host
// intersects [start, end).
func (r *mongoBookingRepo) HasOverlapping(ctx context.Context, hostAddress string, start, end time.Time) (bool, error) {
	existing, err := r.GetActiveInRange(ctx, hostAddress, start, end)
	if err != nil {
		return false, err
	}
	for _, b := range existing {
		if b.ScheduledAt.Before(end) && b.End().After(start) {
			return true, nil
		}
	}
	return false, nil
}
