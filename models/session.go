package models

import "time"

// BookingSession is an in-flight booking held in the cache between slot
// selection and confirmation. Paid sessions carry the Stripe payment intent
// created at initiation.
type BookingSession struct {
	SessionID       string        `json:"sessionId"`
	HostAddress     string        `json:"hostAddress"`
	GuestAddress    string        `json:"guestAddress"`
	GuestEmail      string        `json:"guestEmail,omitempty"`
	Slot            AvailableSlot `json:"slot"`
	Kind            string        `json:"kind"`
	Topic           string        `json:"topic,omitempty"`
	PaymentIntentID string        `json:"paymentIntentId,omitempty"`
	ClientSecret    string        `json:"clientSecret,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}
