package scheduling

import (
	"context"

	"spritz/models"
)

// SchedulingService exposes availability computation and the host-facing
// window/profile management operations.
type SchedulingService interface {
	GetAvailability(ctx context.Context, hostAddress string, rng models.DateRange, kind string) (models.AvailabilityResult, error)
	SetWindows(ctx context.Context, hostAddress string, req models.SetWindowsRequest) ([]models.AvailabilityWindow, error)
	GetWindows(ctx context.Context, hostAddress string) ([]models.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, hostAddress, windowID string) error
	GetProfile(ctx context.Context, hostAddress string) (*models.SchedulingProfile, error)
	UpdateProfile(ctx context.Context, profile models.SchedulingProfile) error
}

// BookingSessionService drives the guest booking lifecycle: session
// initiation, confirmation, and cancellation.
type BookingSessionService interface {
	InitiateSession(ctx context.Context, guestAddress string, input models.BookingRequestInput) (models.BookingSession, error)
	ConfirmBooking(ctx context.Context, guestAddress, sessionID string) (models.Booking, error)
	CancelBooking(ctx context.Context, callerAddress, bookingID string) error
}
