package scheduling

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"spritz/models"
)

type stubWindowRepo struct {
	windows []models.AvailabilityWindow
	err     error
}

func (s *stubWindowRepo) ReplaceForUser(_ context.Context, _ string, windows []models.AvailabilityWindow) ([]models.AvailabilityWindow, error) {
	s.windows = windows
	return windows, s.err
}

func (s *stubWindowRepo) GetByUser(context.Context, string) ([]models.AvailabilityWindow, error) {
	return s.windows, s.err
}

func (s *stubWindowRepo) GetActiveByUser(context.Context, string) ([]models.AvailabilityWindow, error) {
	return s.windows, s.err
}

func (s *stubWindowRepo) DeleteByID(context.Context, string, string) error { return s.err }

type stubBookingRepo struct {
	bookings []models.Booking
}

func (s *stubBookingRepo) Insert(_ context.Context, b models.Booking) (models.Booking, error) {
	s.bookings = append(s.bookings, b)
	return b, nil
}

func (s *stubBookingRepo) GetByID(context.Context, string) (*models.Booking, error) {
	return nil, nil
}

func (s *stubBookingRepo) GetActiveInRange(context.Context, string, time.Time, time.Time) ([]models.Booking, error) {
	return s.bookings, nil
}

func (s *stubBookingRepo) HasOverlapping(context.Context, string, time.Time, time.Time) (bool, error) {
	return false, nil
}

func (s *stubBookingRepo) UpdateStatus(context.Context, string, string) error { return nil }

type stubProfileRepo struct {
	profile *models.SchedulingProfile
}

func (s *stubProfileRepo) GetByUser(context.Context, string) (*models.SchedulingProfile, error) {
	return s.profile, nil
}

func (s *stubProfileRepo) Upsert(_ context.Context, p models.SchedulingProfile) error {
	s.profile = &p
	return nil
}

type stubIntegrationRepo struct {
	integration *models.CalendarIntegration
}

func (s *stubIntegrationRepo) GetByUser(context.Context, string) (*models.CalendarIntegration, error) {
	return s.integration, nil
}

func (s *stubIntegrationRepo) Upsert(context.Context, models.CalendarIntegration) error { return nil }

func (s *stubIntegrationRepo) UpdateTokens(context.Context, string, string, string, time.Time) error {
	return nil
}

type stubBusySource struct {
	busy []models.BusyPeriod
	err  error
}

func (s *stubBusySource) GetBusyPeriods(context.Context, models.CalendarIntegration, time.Time, time.Time) ([]models.BusyPeriod, error) {
	return s.busy, s.err
}

const testHost = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

// futureTestDay picks a day two weeks out so advance notice never interferes.
func futureTestDay() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 14)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func enabledProfile() *models.SchedulingProfile {
	return &models.SchedulingProfile{
		UserAddress:         testHost,
		Enabled:             true,
		FreeDurationMinutes: 30,
		AdvanceNoticeHours:  1,
	}
}

func newTestService(busy *stubBusySource, windows []models.AvailabilityWindow, profile *models.SchedulingProfile) *DefaultSchedulingService {
	return &DefaultSchedulingService{
		WindowRepo:      &stubWindowRepo{windows: windows},
		BookingRepo:     &stubBookingRepo{},
		ProfileRepo:     &stubProfileRepo{profile: profile},
		IntegrationRepo: &stubIntegrationRepo{integration: &models.CalendarIntegration{UserAddress: testHost}},
		BusySource:      busy,
	}
}

func TestGetAvailability_AbsentProfile(t *testing.T) {
	svc := newTestService(&stubBusySource{}, nil, nil)

	result, err := svc.GetAvailability(context.Background(), testHost, models.DateRange{Start: futureTestDay(), End: futureTestDay()}, models.BookingKindFree)

	require.NoError(t, err)
	assert.Empty(t, result.AvailableSlots)
	assert.Equal(t, "Scheduling is not enabled for this user", result.Message)
}

func TestGetAvailability_DisabledProfile(t *testing.T) {
	profile := enabledProfile()
	profile.Enabled = false
	svc := newTestService(&stubBusySource{}, nil, profile)

	result, err := svc.GetAvailability(context.Background(), testHost, models.DateRange{Start: futureTestDay(), End: futureTestDay()}, models.BookingKindFree)

	require.NoError(t, err)
	assert.Empty(t, result.AvailableSlots)
	assert.NotEmpty(t, result.Message)
}

func TestGetAvailability_NoWindows(t *testing.T) {
	svc := newTestService(&stubBusySource{}, nil, enabledProfile())

	result, err := svc.GetAvailability(context.Background(), testHost, models.DateRange{Start: futureTestDay(), End: futureTestDay()}, models.BookingKindFree)

	require.NoError(t, err)
	assert.Empty(t, result.AvailableSlots)
	assert.Equal(t, "No availability windows configured", result.Message)
}

func TestGetAvailability_FailOpenOnCalendarError(t *testing.T) {
	day := futureTestDay()
	windows := []models.AvailabilityWindow{{
		ID:        "w1",
		DayOfWeek: int(day.Weekday()),
		StartTime: "09:00",
		EndTime:   "12:00",
		Timezone:  "UTC",
		IsActive:  true,
	}}
	rng := models.DateRange{Start: day, End: day}

	broken := newTestService(&stubBusySource{err: errors.New("calendar unreachable")}, windows, enabledProfile())
	healthy := newTestService(&stubBusySource{}, windows, enabledProfile())

	gotBroken, err := broken.GetAvailability(context.Background(), testHost, rng, models.BookingKindFree)
	require.NoError(t, err)
	gotHealthy, err := healthy.GetAvailability(context.Background(), testHost, rng, models.BookingKindFree)
	require.NoError(t, err)

	// A calendar outage must widen availability, never block it: the result
	// matches what an empty calendar would produce.
	assert.Equal(t, gotHealthy.AvailableSlots, gotBroken.AvailableSlots)
	assert.NotEmpty(t, gotBroken.AvailableSlots)
}

func TestGetAvailability_BusyPeriodsApplied(t *testing.T) {
	day := futureTestDay()
	windows := []models.AvailabilityWindow{{
		ID:        "w1",
		DayOfWeek: int(day.Weekday()),
		StartTime: "09:00",
		EndTime:   "10:00",
		Timezone:  "UTC",
		IsActive:  true,
	}}
	busy := []models.BusyPeriod{{
		Start: day.Add(9 * time.Hour),
		End:   day.Add(9*time.Hour + 30*time.Minute),
	}}

	svc := newTestService(&stubBusySource{busy: busy}, windows, enabledProfile())

	result, err := svc.GetAvailability(context.Background(), testHost, models.DateRange{Start: day, End: day}, models.BookingKindFree)

	require.NoError(t, err)
	require.Len(t, result.AvailableSlots, 1)
	assert.Equal(t, day.Add(9*time.Hour+30*time.Minute), result.AvailableSlots[0].Start)
}

func TestSetWindows_RejectsInvalidWindow(t *testing.T) {
	svc := newTestService(&stubBusySource{}, nil, enabledProfile())

	cases := []models.AvailabilityWindow{
		{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00", Timezone: "UTC"},
		{DayOfWeek: 1, StartTime: "25:00", EndTime: "26:00", Timezone: "UTC"},
		{DayOfWeek: 1, StartTime: "10:00", EndTime: "09:00", Timezone: "UTC"},
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00", Timezone: "UTC"},
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", Timezone: "Mars/Olympus"},
	}
	for i, w := range cases {
		_, err := svc.SetWindows(context.Background(), testHost, models.SetWindowsRequest{Windows: []models.AvailabilityWindow{w}})
		require.Error(t, err, "case %d", i)
		var schedErr *SchedulingError
		require.ErrorAs(t, err, &schedErr, "case %d", i)
		assert.Equal(t, "validationError", schedErr.Code, "case %d", i)
	}
}

func TestSetWindows_StoresValidWindows(t *testing.T) {
	svc := newTestService(&stubBusySource{}, nil, enabledProfile())

	windows := []models.AvailabilityWindow{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", Timezone: "America/New_York", IsActive: true},
		{DayOfWeek: 3, StartTime: "08:30", EndTime: "12:00", Timezone: "Europe/Berlin", IsActive: true},
	}

	stored, err := svc.SetWindows(context.Background(), testHost, models.SetWindowsRequest{Windows: windows})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestUpdateProfile_Validation(t *testing.T) {
	svc := newTestService(&stubBusySource{}, nil, nil)

	bad := models.SchedulingProfile{
		UserAddress:         testHost,
		Enabled:             true,
		FreeDurationMinutes: 0,
		PaidDurationMinutes: 0,
	}
	err := svc.UpdateProfile(context.Background(), bad)
	require.Error(t, err)

	good := models.SchedulingProfile{
		UserAddress:         testHost,
		Enabled:             true,
		FreeDurationMinutes: 30,
	}
	require.NoError(t, svc.UpdateProfile(context.Background(), good))

	got, err := svc.GetProfile(context.Background(), testHost)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Enabled)
}

func TestDeleteWindow(t *testing.T) {
	svc := newTestService(&stubBusySource{}, nil, enabledProfile())
	require.NoError(t, svc.DeleteWindow(context.Background(), testHost, "w1"))

	svc.WindowRepo = &stubWindowRepo{err: mongo.ErrNoDocuments}
	err := svc.DeleteWindow(context.Background(), testHost, "missing")
	var schedErr *SchedulingError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, "notFound", schedErr.Code)
}

func TestAvailabilityCacheKey(t *testing.T) {
	rng := models.DateRange{
		Start: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC),
	}
	key := availabilityCacheKey(testHost, rng, "")
	assert.Equal(t, fmt.Sprintf("avail:%s:2025-03-10:2025-03-16:free", testHost), key)
}
