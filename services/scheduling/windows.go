package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"spritz/models"
)

// SetWindows validates and replaces a host's full availability window set,
// then invalidates any cached availability for the host.
func (s *DefaultSchedulingService) SetWindows(ctx context.Context, hostAddress string, req models.SetWindowsRequest) ([]models.AvailabilityWindow, error) {
	for i, w := range req.Windows {
		if err := validateWindow(w); err != nil {
			return nil, NewValidationError(fmt.Sprintf("window %d: %v", i, err))
		}
	}

	windows, err := s.WindowRepo.ReplaceForUser(ctx, hostAddress, req.Windows)
	if err != nil {
		return nil, fmt.Errorf("failed to store availability windows: %w", err)
	}

	s.invalidateAvailability(ctx, hostAddress)
	return windows, nil
}

func (s *DefaultSchedulingService) GetWindows(ctx context.Context, hostAddress string) ([]models.AvailabilityWindow, error) {
	windows, err := s.WindowRepo.GetByUser(ctx, hostAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability windows: %w", err)
	}
	return windows, nil
}

// DeleteWindow removes a single window owned by the host.
func (s *DefaultSchedulingService) DeleteWindow(ctx context.Context, hostAddress, windowID string) error {
	if err := s.WindowRepo.DeleteByID(ctx, hostAddress, windowID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return NewNotFoundError("availability window not found")
		}
		return fmt.Errorf("failed to delete availability window: %w", err)
	}
	s.invalidateAvailability(ctx, hostAddress)
	return nil
}

func (s *DefaultSchedulingService) GetProfile(ctx context.Context, hostAddress string) (*models.SchedulingProfile, error) {
	profile, err := s.ProfileRepo.GetByUser(ctx, hostAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to load scheduling profile: %w", err)
	}
	return profile, nil
}

func (s *DefaultSchedulingService) UpdateProfile(ctx context.Context, profile models.SchedulingProfile) error {
	if err := validateProfile(profile); err != nil {
		return err
	}
	if err := s.ProfileRepo.Upsert(ctx, profile); err != nil {
		return fmt.Errorf("failed to store scheduling profile: %w", err)
	}
	s.invalidateAvailability(ctx, profile.UserAddress)
	return nil
}

func validateWindow(w models.AvailabilityWindow) error {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return fmt.Errorf("dayOfWeek must be 0-6, got %d", w.DayOfWeek)
	}
	startH, startM, err := ParseClock(w.StartTime)
	if err != nil {
		return err
	}
	endH, endM, err := ParseClock(w.EndTime)
	if err != nil {
		return err
	}
	if endH*60+endM <= startH*60+startM {
		return fmt.Errorf("endTime %s must be after startTime %s", w.EndTime, w.StartTime)
	}
	if _, err := time.LoadLocation(w.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q", w.Timezone)
	}
	return nil
}

func validateProfile(p models.SchedulingProfile) error {
	if p.UserAddress == "" {
		return NewValidationError("missing user address")
	}
	if p.FreeDurationMinutes < 0 || p.PaidDurationMinutes < 0 || p.BufferMinutes < 0 {
		return NewValidationError("durations and buffer must be non-negative")
	}
	if p.AdvanceNoticeHours < 0 {
		return NewValidationError("advance notice must be non-negative")
	}
	if p.Enabled && p.FreeDurationMinutes == 0 && p.PaidDurationMinutes == 0 {
		return NewValidationError("an enabled profile needs a free or paid duration")
	}
	return nil
}
