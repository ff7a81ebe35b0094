package models

import "time"

// CalendarIntegration holds a host's connected-calendar credentials. Tokens
// are written by the OAuth connect flow and refreshed best-effort when a
// busy-period fetch finds them expired.
type CalendarIntegration struct {
	UserAddress  string    `bson:"userAddress" json:"userAddress"`
	Provider     string    `bson:"provider" json:"provider"` // currently always "google"
	CalendarID   string    `bson:"calendarId" json:"calendarId"`
	AccessToken  string    `bson:"accessToken" json:"-"`
	RefreshToken string    `bson:"refreshToken" json:"-"`
	TokenExpiry  time.Time `bson:"tokenExpiry" json:"-"`
	CreatedAt    time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
