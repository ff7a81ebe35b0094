package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bookingRepo "spritz/database/repository/booking"
	profileRepo "spritz/database/repository/profile"
	"spritz/models"
	"spritz/services/notification"
	"spritz/services/tasks"
	"spritz/utils"
)

const reminderLead = time.Hour

// DefaultBookingSessionService drives the guest booking flow. Sessions live
// in the session store between slot selection and confirmation; the slot is
// verified against a fresh availability computation at initiation and
// re-checked against bookings at confirmation.
type DefaultBookingSessionService struct {
	SchedulingSvc SchedulingService
	BookingRepo   bookingRepo.BookingRepository
	ProfileRepo   profileRepo.ProfileRepository
	Notification  notification.NotificationService
	Sessions      SessionStore
	Payments      PaymentProvider
}

func (b *DefaultBookingSessionService) InitiateSession(ctx context.Context, guestAddress string, input models.BookingRequestInput) (models.BookingSession, error) {
	host, err := utils.ChecksumAddress(input.HostAddress)
	if err != nil {
		return models.BookingSession{}, NewValidationError("invalid host address")
	}
	if host == guestAddress {
		return models.BookingSession{}, NewValidationError("cannot book yourself")
	}

	kind := input.Kind
	if kind == "" {
		kind = models.BookingKindFree
	}
	if kind != models.BookingKindFree && kind != models.BookingKindPaid {
		return models.BookingSession{}, NewValidationError("kind must be \"free\" or \"paid\"")
	}

	profile, err := b.ProfileRepo.GetByUser(ctx, host)
	if err != nil {
		return models.BookingSession{}, fmt.Errorf("failed to load scheduling profile: %w", err)
	}
	if profile == nil || !profile.Enabled {
		return models.BookingSession{}, NewNotFoundError("scheduling is not enabled for this host")
	}

	slot, err := b.resolveSlot(ctx, host, input.Slot, kind)
	if err != nil {
		return models.BookingSession{}, err
	}

	session := models.BookingSession{
		SessionID:    uuid.New().String(),
		HostAddress:  host,
		GuestAddress: guestAddress,
		GuestEmail:   input.GuestEmail,
		Slot:         slot,
		Kind:         kind,
		Topic:        input.Topic,
		CreatedAt:    time.Now().UTC(),
	}

	if kind == models.BookingKindPaid {
		intentID, clientSecret, err := b.Payments.CreateIntent(profile, guestAddress, slot)
		if err != nil {
			return models.BookingSession{}, err
		}
		session.PaymentIntentID = intentID
		session.ClientSecret = clientSecret
	}

	if err := b.Sessions.Save(ctx, session); err != nil {
		b.cancelIntent(session.PaymentIntentID)
		return models.BookingSession{}, fmt.Errorf("failed to store booking session: %w", err)
	}

	return session, nil
}

// resolveSlot re-computes availability around the requested slot and requires
// the requested start to match a computed slot exactly. The range is widened
// by a day on each side: the calculator walks calendar days in the host's
// reference timezone, so a slot's window occurrence may sit on a neighboring
// UTC date.
func (b *DefaultBookingSessionService) resolveSlot(ctx context.Context, host string, requested time.Time, kind string) (models.AvailableSlot, error) {
	day := requested.UTC().Truncate(24 * time.Hour)
	rng := models.DateRange{Start: day.AddDate(0, 0, -1), End: day.AddDate(0, 0, 1)}

	avail, err := b.SchedulingSvc.GetAvailability(ctx, host, rng, kind)
	if err != nil {
		return models.AvailableSlot{}, fmt.Errorf("failed to verify slot availability: %w", err)
	}
	for _, s := range avail.AvailableSlots {
		if s.Start.Equal(requested) {
			return s, nil
		}
	}
	return models.AvailableSlot{}, NewConflictError("requested slot is not available")
}

func (b *DefaultBookingSessionService) ConfirmBooking(ctx context.Context, guestAddress, sessionID string) (models.Booking, error) {
	logger := utils.GetLogger()

	session, err := b.Sessions.Load(ctx, sessionID)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to load booking session: %w", err)
	}
	if session == nil {
		return models.Booking{}, NewNotFoundError("booking session not found or expired")
	}
	if session.GuestAddress != guestAddress {
		return models.Booking{}, NewValidationError("session does not belong to caller")
	}

	// The slot may have been taken since the session was opened.
	conflict, err := b.BookingRepo.HasOverlapping(ctx, session.HostAddress, session.Slot.Start, session.Slot.End)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to check slot conflicts: %w", err)
	}
	if conflict {
		b.cancelIntent(session.PaymentIntentID)
		_ = b.Sessions.Delete(ctx, sessionID)
		return models.Booking{}, NewConflictError("slot was booked by someone else")
	}

	booking, err := b.BookingRepo.Insert(ctx, models.Booking{
		HostAddress:     session.HostAddress,
		GuestAddress:    session.GuestAddress,
		GuestEmail:      session.GuestEmail,
		ScheduledAt:     session.Slot.Start,
		DurationMinutes: int(session.Slot.End.Sub(session.Slot.Start) / time.Minute),
		Kind:            session.Kind,
		Status:          models.BookingStatusConfirmed,
		Topic:           session.Topic,
		PaymentIntentID: session.PaymentIntentID,
	})
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to store booking: %w", err)
	}

	b.scheduleReminders(booking)

	if b.Notification != nil {
		slotStart := booking.ScheduledAt.Format(time.RFC3339)
		if err := b.Notification.NotifyBookingConfirmed(ctx, booking.HostAddress, booking.GuestAddress, booking.Topic, slotStart); err != nil {
			logger.Warn("booking confirmation push failed", zap.String("booking", booking.ID), zap.Error(err))
		}
	}

	_ = b.Sessions.Delete(ctx, sessionID)
	return booking, nil
}

func (b *DefaultBookingSessionService) scheduleReminders(booking models.Booking) {
	logger := utils.GetLogger()

	fireAt := booking.ScheduledAt.Add(-reminderLead)
	if !fireAt.After(time.Now()) {
		return
	}

	when := booking.ScheduledAt.Format(time.RFC3339)
	targets := []struct {
		target  string
		address string
		body    string
	}{
		{"host", booking.HostAddress, fmt.Sprintf("Your booking starts at %s", when)},
		{"guest", booking.GuestAddress, fmt.Sprintf("Your booking with %s starts at %s", booking.HostAddress, when)},
	}

	for _, t := range targets {
		payload := models.ReminderPayload{
			BookingID: booking.ID,
			Target:    t.target,
			Address:   t.address,
			Title:     "Upcoming booking ⏰",
			Body:      t.body,
			FireDate:  fireAt.Format(time.RFC3339),
		}
		if err := tasks.EnqueueReminder(payload, fireAt); err != nil {
			logger.Warn("failed to schedule booking reminder",
				zap.String("booking", booking.ID), zap.String("target", t.target), zap.Error(err))
		}
	}
}

func (b *DefaultBookingSessionService) CancelBooking(ctx context.Context, callerAddress, bookingID string) error {
	booking, err := b.BookingRepo.GetByID(ctx, bookingID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return NewNotFoundError("booking not found")
	}
	if err != nil {
		return fmt.Errorf("failed to load booking: %w", err)
	}
	if booking.HostAddress != callerAddress && booking.GuestAddress != callerAddress {
		return NewValidationError("only the host or guest may cancel a booking")
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil
	}

	if err := b.BookingRepo.UpdateStatus(ctx, bookingID, models.BookingStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	b.cancelIntent(booking.PaymentIntentID)
	return nil
}

// cancelIntent is best-effort; an orphaned intent expires on its own.
func (b *DefaultBookingSessionService) cancelIntent(id string) {
	if b.Payments == nil || id == "" {
		return
	}
	b.Payments.CancelIntent(id)
}
