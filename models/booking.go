package models

import "time"

// Booking kinds.
const (
	BookingKindFree = "free"
	BookingKindPaid = "paid"
)

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a confirmed or in-flight booking record.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	HostAddress     string    `bson:"hostAddress" json:"hostAddress"`
	GuestAddress    string    `bson:"guestAddress" json:"guestAddress"`
	GuestEmail      string    `bson:"guestEmail,omitempty" json:"guestEmail,omitempty"`
	ScheduledAt     time.Time `bson:"scheduledAt" json:"scheduledAt"` // UTC slot start
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Kind            string    `bson:"kind" json:"kind"`     // "free" or "paid"
	Status          string    `bson:"status" json:"status"` // "pending", "confirmed", "cancelled"
	Topic           string    `bson:"topic,omitempty" json:"topic,omitempty"`
	PaymentIntentID string    `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// End returns the UTC instant at which the booking finishes.
func (b Booking) End() time.Time {
	return b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// BookingRequestInput is the payload a guest submits to start a booking session.
type BookingRequestInput struct {
	HostAddress string    `json:"hostAddress" binding:"required"`
	Slot        time.Time `json:"slot" binding:"required"` // UTC slot start, must match a computed slot
	Kind        string    `json:"kind"`
	Topic       string    `json:"topic"`
	GuestEmail  string    `json:"guestEmail"`
}
