package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"spritz/config"
	bookingRepo "spritz/database/repository/booking"
	integrationRepo "spritz/database/repository/integration"
	profileRepo "spritz/database/repository/profile"
	windowRepo "spritz/database/repository/window"
	"spritz/models"
	"spritz/services/calendar"
	"spritz/utils"
)

const (
	// Bound on the external calendar fetch; past it we fail open.
	busyFetchTimeout = 10 * time.Second

	availabilityCacheTTL = 60 * time.Second
)

// DefaultSchedulingService is the production scheduling service.
type DefaultSchedulingService struct {
	WindowRepo      windowRepo.WindowRepository
	BookingRepo     bookingRepo.BookingRepository
	ProfileRepo     profileRepo.ProfileRepository
	IntegrationRepo integrationRepo.IntegrationRepository
	BusySource      calendar.BusySource
	Cache           *redis.Client
}

// GetAvailability computes the bookable slots for a host over a date range.
// Window and booking fetches are authoritative; the calendar fetch fails
// open. An absent or disabled profile yields an empty result with an
// explanatory message, not an error.
func (s *DefaultSchedulingService) GetAvailability(ctx context.Context, hostAddress string, rng models.DateRange, kind string) (models.AvailabilityResult, error) {
	logger := utils.GetLogger()

	profile, err := s.ProfileRepo.GetByUser(ctx, hostAddress)
	if err != nil {
		return models.AvailabilityResult{}, fmt.Errorf("failed to load scheduling profile: %w", err)
	}
	if profile == nil || !profile.Enabled {
		return models.AvailabilityResult{
			AvailableSlots: []models.AvailableSlot{},
			Timezone:       "UTC",
			Message:        "Scheduling is not enabled for this user",
		}, nil
	}

	cacheKey := availabilityCacheKey(hostAddress, rng, kind)
	if cached, ok := s.cachedResult(ctx, cacheKey); ok {
		return cached, nil
	}

	windows, bookings, busy, err := s.fetchInputs(ctx, hostAddress, profile, rng)
	if err != nil {
		return models.AvailabilityResult{}, err
	}

	cfg := s.slotConfig(profile)
	duration := cfg.FreeDurationMinutes
	if kind == models.BookingKindPaid && cfg.PaidDurationMinutes > 0 {
		duration = cfg.PaidDurationMinutes
	}

	if len(windows) == 0 {
		return models.AvailabilityResult{
			AvailableSlots: []models.AvailableSlot{},
			Duration:       duration,
			Timezone:       "UTC",
			Message:        "No availability windows configured",
		}, nil
	}

	slots := ComputeAvailableSlots(windows, busy, bookings, rng, cfg, kind, time.Now().UTC())
	if slots == nil {
		slots = []models.AvailableSlot{}
	}

	result := models.AvailabilityResult{
		AvailableSlots: slots,
		Duration:       duration,
		Timezone:       ReferenceLocation(windows).String(),
	}
	s.cacheResult(ctx, cacheKey, result)

	logger.Debug("computed availability",
		zap.String("host", hostAddress),
		zap.Int("slots", len(slots)),
		zap.Int("busyPeriods", len(busy)),
		zap.Int("bookings", len(bookings)))
	return result, nil
}

// fetchInputs loads windows, bookings, and busy periods concurrently; the
// three sources have no ordering dependency. Store errors propagate, the
// calendar error degrades to zero busy periods.
func (s *DefaultSchedulingService) fetchInputs(ctx context.Context, hostAddress string, profile *models.SchedulingProfile, rng models.DateRange) ([]models.AvailabilityWindow, []models.Booking, []models.BusyPeriod, error) {
	logger := utils.GetLogger()

	var (
		wg       sync.WaitGroup
		windows  []models.AvailabilityWindow
		bookings []models.Booking
		busy     []models.BusyPeriod
		winErr   error
		bookErr  error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		windows, winErr = s.WindowRepo.GetActiveByUser(ctx, hostAddress)
	}()
	go func() {
		defer wg.Done()
		bookings, bookErr = s.BookingRepo.GetActiveInRange(ctx, hostAddress, rng.Start, rng.End.Add(24*time.Hour))
	}()
	go func() {
		defer wg.Done()
		busy = s.fetchBusyPeriods(ctx, hostAddress, profile, rng)
	}()
	wg.Wait()

	if winErr != nil {
		return nil, nil, nil, fmt.Errorf("failed to load availability windows: %w", winErr)
	}
	if bookErr != nil {
		return nil, nil, nil, fmt.Errorf("failed to load bookings: %w", bookErr)
	}

	logger.Debug("availability inputs fetched", zap.String("host", hostAddress))
	return windows, bookings, busy, nil
}

// fetchBusyPeriods is fail-open by design of the surrounding feature: a
// calendar outage must widen availability, never block it.
func (s *DefaultSchedulingService) fetchBusyPeriods(ctx context.Context, hostAddress string, profile *models.SchedulingProfile, rng models.DateRange) []models.BusyPeriod {
	logger := utils.GetLogger()

	busyCtx, cancel := context.WithTimeout(ctx, busyFetchTimeout)
	defer cancel()

	integration, err := s.IntegrationRepo.GetByUser(busyCtx, hostAddress)
	if err != nil || integration == nil {
		if err != nil {
			logger.Warn("calendar integration lookup failed, proceeding without busy periods",
				zap.String("host", hostAddress), zap.Error(err))
		}
		return nil
	}
	if profile.CalendarID != "" {
		integration.CalendarID = profile.CalendarID
	}

	busy, err := s.BusySource.GetBusyPeriods(busyCtx, *integration, rng.Start, rng.End.Add(24*time.Hour))
	if err != nil {
		logger.Warn("busy period fetch failed, proceeding without busy periods",
			zap.String("host", hostAddress), zap.Error(err))
		return nil
	}
	return busy
}

func (s *DefaultSchedulingService) slotConfig(profile *models.SchedulingProfile) models.SlotConfig {
	cfg := profile.SlotConfig()
	if cfg.AdvanceNoticeHours <= 0 {
		cfg.AdvanceNoticeHours = config.AppConfig.DefaultAdvanceNoticeHours
	}
	if cfg.BufferMinutes < 0 {
		cfg.BufferMinutes = config.AppConfig.DefaultBufferMinutes
	}
	if cfg.FreeDurationMinutes <= 0 {
		cfg.FreeDurationMinutes = 30
	}
	return cfg
}

func availabilityCacheKey(hostAddress string, rng models.DateRange, kind string) string {
	if kind == "" {
		kind = models.BookingKindFree
	}
	return fmt.Sprintf("avail:%s:%s:%s:%s",
		hostAddress,
		rng.Start.UTC().Format("2006-01-02"),
		rng.End.UTC().Format("2006-01-02"),
		kind)
}

func (s *DefaultSchedulingService) cachedResult(ctx context.Context, key string) (models.AvailabilityResult, bool) {
	if s.Cache == nil {
		return models.AvailabilityResult{}, false
	}
	data, err := s.Cache.Get(ctx, key).Result()
	if err != nil {
		return models.AvailabilityResult{}, false
	}
	var result models.AvailabilityResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return models.AvailabilityResult{}, false
	}
	return result, true
}

func (s *DefaultSchedulingService) cacheResult(ctx context.Context, key string, result models.AvailabilityResult) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = s.Cache.Set(ctx, key, data, availabilityCacheTTL).Err()
}

// invalidateAvailability drops cached availability for a host after a window
// or profile change. Keys are date-scoped, so we scan the host's prefix.
func (s *DefaultSchedulingService) invalidateAvailability(ctx context.Context, hostAddress string) {
	if s.Cache == nil {
		return
	}
	iter := s.Cache.Scan(ctx, 0, "avail:"+hostAddress+":*", 100).Iterator()
	for iter.Next(ctx) {
		_ = s.Cache.Del(ctx, iter.Val()).Err()
	}
}
