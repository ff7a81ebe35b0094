package models

import "time"

// BusyPeriod is an externally sourced time range during which the host is
// unavailable (from a connected calendar). Ephemeral, fetched per request.
type BusyPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailableSlot is a candidate bookable time range produced by the
// availability calculator. Instants are UTC; JSON encoding is ISO-8601.
type AvailableSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the slot intersects [start, end) using the
// three-way closed-interval test: start-in, end-in, or fully containing.
func (s AvailableSlot) Overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && s.End.After(start)
}

// DateRange bounds an availability request, inclusive of both calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// AvailabilityResult is the response shape for an availability query.
type AvailabilityResult struct {
	AvailableSlots []AvailableSlot `json:"availableSlots"`
	Duration       int             `json:"duration"` // minutes per slot
	Timezone       string          `json:"timezone"` // host's reference timezone
	Message        string          `json:"message,omitempty"`
}
