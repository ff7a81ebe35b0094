package models

import "time"

// AvailabilityWindow is a recurring weekly time range during which a host
// accepts bookings. Times are wall-clock "HH:MM" strings interpreted in the
// window's own timezone.
type AvailabilityWindow struct {
	ID          string    `bson:"id" json:"id"`
	UserAddress string    `bson:"userAddress" json:"userAddress"`
	DayOfWeek   int       `bson:"dayOfWeek" json:"dayOfWeek" binding:"min=0,max=6"` // 0 = Sunday
	StartTime   string    `bson:"startTime" json:"startTime" binding:"required"`    // e.g. "09:00"
	EndTime     string    `bson:"endTime" json:"endTime" binding:"required"`        // e.g. "17:00"
	Timezone    string    `bson:"timezone" json:"timezone" binding:"required"`      // IANA name, e.g. "America/New_York"
	IsActive    bool      `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// SetWindowsRequest replaces a host's full window set in one call.
type SetWindowsRequest struct {
	Windows []AvailabilityWindow `json:"windows" binding:"required"`
}
