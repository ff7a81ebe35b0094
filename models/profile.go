package models

import "time"

// SchedulingProfile is a host's scheduling configuration. A missing or
// disabled profile means the host does not accept bookings.
type SchedulingProfile struct {
	UserAddress         string    `bson:"userAddress" json:"userAddress"`
	Enabled             bool      `bson:"enabled" json:"enabled"`
	FreeDurationMinutes int       `bson:"freeDurationMinutes" json:"freeDurationMinutes"`
	PaidDurationMinutes int       `bson:"paidDurationMinutes" json:"paidDurationMinutes"`
	BufferMinutes       int       `bson:"bufferMinutes" json:"bufferMinutes"`
	AdvanceNoticeHours  int       `bson:"advanceNoticeHours" json:"advanceNoticeHours"`
	PaidPriceCents      int64     `bson:"paidPriceCents,omitempty" json:"paidPriceCents,omitempty"`
	Currency            string    `bson:"currency,omitempty" json:"currency,omitempty"`
	CalendarID          string    `bson:"calendarId,omitempty" json:"calendarId,omitempty"`
	FCMToken            string    `bson:"fcmToken,omitempty" json:"-"`
	UpdatedAt           time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// SlotConfig is the slice of profile fields the availability calculator needs.
type SlotConfig struct {
	FreeDurationMinutes int
	PaidDurationMinutes int
	BufferMinutes       int
	AdvanceNoticeHours  int
}

// SlotConfig extracts the calculator configuration from the profile.
func (p SchedulingProfile) SlotConfig() SlotConfig {
	return SlotConfig{
		FreeDurationMinutes: p.FreeDurationMinutes,
		PaidDurationMinutes: p.PaidDurationMinutes,
		BufferMinutes:       p.BufferMinutes,
		AdvanceNoticeHours:  p.AdvanceNoticeHours,
	}
}
