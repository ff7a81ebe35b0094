package scheduling

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spritz/models"
)

func utcDate(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

// monday2025Mar10 is a Monday.
var monday2025Mar10 = utcDate(2025, time.March, 10, 0, 0)

func mondayWindow(start, end string) models.AvailabilityWindow {
	return models.AvailabilityWindow{
		ID:        "w1",
		DayOfWeek: 1, // Monday
		StartTime: start,
		EndTime:   end,
		Timezone:  "UTC",
		IsActive:  true,
	}
}

func singleDayRange(day time.Time) models.DateRange {
	return models.DateRange{Start: day, End: day}
}

func TestComputeAvailableSlots_BufferExcludesTrailingSlot(t *testing.T) {
	// 09:00-10:00 with 15 min slots and 15 min buffer: 09:00 and 09:30 fit,
	// 09:45 does not because a full slot+buffer would pass the window end.
	cfg := models.SlotConfig{FreeDurationMinutes: 15, BufferMinutes: 15, AdvanceNoticeHours: 12}
	now := utcDate(2025, time.March, 3, 0, 0)

	slots := ComputeAvailableSlots(
		[]models.AvailabilityWindow{mondayWindow("09:00", "10:00")},
		nil, nil,
		singleDayRange(monday2025Mar10),
		cfg, models.BookingKindFree, now,
	)

	require.Len(t, slots, 2)
	assert.Equal(t, utcDate(2025, time.March, 10, 9, 0), slots[0].Start)
	assert.Equal(t, utcDate(2025, time.March, 10, 9, 15), slots[0].End)
	assert.Equal(t, utcDate(2025, time.March, 10, 9, 30), slots[1].Start)
	assert.Equal(t, utcDate(2025, time.March, 10, 9, 45), slots[1].End)
}

func TestComputeAvailableSlots_AdvanceNoticeDropsOccurrence(t *testing.T) {
	cfg := models.SlotConfig{FreeDurationMinutes: 15, AdvanceNoticeHours: 2}

	// The window starts inside the notice period; the whole occurrence goes.
	now := utcDate(2025, time.March, 10, 8, 0)
	slots := ComputeAvailableSlots(
		[]models.AvailabilityWindow{mondayWindow("09:00", "10:00")},
		nil, nil,
		singleDayRange(monday2025Mar10),
		cfg, models.BookingKindFree, now,
	)
	assert.Empty(t, slots)

	// Far enough ahead, everything survives and respects the cutoff.
	now = utcDate(2025, time.March, 10, 6, 0)
	slots = ComputeAvailableSlots(
		[]models.AvailabilityWindow{mondayWindow("09:00", "10:00")},
		nil, nil,
		singleDayRange(monday2025Mar10),
		cfg, models.BookingKindFree, now,
	)
	require.NotEmpty(t, slots)
	cutoff := now.Add(2 * time.Hour)
	for _, s := range slots {
		assert.False(t, s.Start.Before(cutoff), "slot %v starts before cutoff %v", s.Start, cutoff)
	}
}

func TestComputeAvailableSlots_BusyPeriodExcluded(t *testing.T) {
	cfg := models.SlotConfig{FreeDurationMinutes: 15, BufferMinutes: 15, AdvanceNoticeHours: 1}
	now := utcDate(2025, time.March, 3, 0, 0)
	busy := []models.BusyPeriod{{
		Start: utcDate(2025, time.March, 10, 9, 30),
		End:   utcDate(2025, time.March, 10, 9, 45),
	}}

	slots := ComputeAvailableSlots(
		[]models.AvailabilityWindow{mondayWindow("09:00", "10:00")},
		busy, nil,
		singleDayRange(monday2025Mar10),
		cfg, models.BookingKindFree, now,
	)

	require.Len(t, slots, 1)
	assert.Equal(t, utcDate(2025, time.March, 10, 9, 0), slots[0].Start)
}

func TestComputeAvailableSlots_BookingExactCoverExcludesOnlyThatSlot(t *testing.T) {
	cfg := models.SlotConfig{FreeDurationMinutes: 15, BufferMinutes: 15, AdvanceNoticeHours: 1}
	now := utcDate(2025, time.March, 3, 0, 0)
	bookings := []models.Booking{{
		ScheduledAt:     utcDate(2025, time.March, 10, 9, 0),
		DurationMinutes: 15,
		Status:          models.BookingStatusConfirmed,
	}}

	slots := ComputeAvailableSlots(
		[]models.AvailabilityWindow{mondayWindow("09:00", "10:00")},
		nil, bookings,
		singleDayRange(monday2025Mar10),
		cfg, models.BookingKindFree, now,
	)

	require.Len(t, slots, 1)
	assert.Equal(t, utcDate(2025, time.March, 10, 9, 30), slots[0].Start)
}

func TestComputeAvailableSlots_CancelledBookingIgnored(t *testing.T) {
	cfg := models.SlotConfig{FreeDurationMinutes: 15, BufferMinutes: 15, AdvanceNoticeHours: 1}
	now := utcDate(2025, time.March, 3, 0, 0)
	bookings := []models.Booking{{
		ScheduledAt:     utcDate(2025, time.March, 10, 9, 0),
		DurationMinutes: 15,
		Status:          models.BookingStatusCancelled,
	}}

	slots := ComputeAvailableSlots(
		[]models.AvailabilityWindow{mondayWindow("09:00", "10:00")},
		nil, bookings,
		singleDayRange(monday2025Mar10),
		cfg, models.BookingKindFree, now,
	)

	assert.Len(t, slots, 2)
}

func TestComputeAvailableSlots_InactiveWindowSkipped(t *testing.T) {
	w := mondayWindow("09:00", "10:00")
	w.IsActive = false
	cfg := models.SlotConfig{FreeDurationMinutes: 15, AdvanceNoticeHours: 1}
	now := utcDate(2025, time.March, 3, 0, 0)

	slots := ComputeAvailableSlots(
		[]models.AvailabilityWindow{w},
		nil, nil,
		singleDayRange(monday2025Mar10),
		cfg, models.BookingKindFree, now,
	)
	assert.Empty(t, slots)
}

func TestComputeAvailableSlots_WindowTimezoneConversion(t *testing.T) {
	// 09:00 America/New_York on 2025-03-10 is 13:00 UTC (EDT, UTC-4).
	w := mondayWindow("09:00", "10:00")
	w.Timezone = "America/New_York"
	cfg := models.SlotConfig{FreeDurationMinutes: 30, AdvanceNoticeHours: 1}
	now := utcDate(2025, time.March, 3, 0, 0)

	slots := ComputeAvailableSlots(
		[]models.AvailabilityWindow{w},
		nil, nil,
		singleDayRange(monday2025Mar10),
		cfg, models.BookingKindFree, now,
	)

	require.Len(t, slots, 2)
	assert.Equal(t, utcDate(2025, time.March, 10, 13, 0), slots[0].Start)
	assert.Equal(t, utcDate(2025, time.March, 10, 13, 30), slots[1].Start)
}

func TestComputeAvailableSlots_PaidKindUsesPaidDuration(t *testing.T) {
	cfg := models.SlotConfig{FreeDurationMinutes: 15, PaidDurationMinutes: 30, AdvanceNoticeHours: 1}
	now := utcDate(2025, time.March, 3, 0, 0)

	slots := ComputeAvailableSlots(
		[]models.AvailabilityWindow{mondayWindow("09:00", "10:00")},
		nil, nil,
		singleDayRange(monday2025Mar10),
		cfg, models.BookingKindPaid, now,
	)

	require.Len(t, slots, 2)
	assert.Equal(t, 30*time.Minute, slots[0].End.Sub(slots[0].Start))
}

func TestComputeAvailableSlots_Idempotent(t *testing.T) {
	cfg := models.SlotConfig{FreeDurationMinutes: 20, BufferMinutes: 10, AdvanceNoticeHours: 3}
	now := utcDate(2025, time.March, 3, 7, 45)
	windows := []models.AvailabilityWindow{
		mondayWindow("08:00", "12:30"),
		mondayWindow("14:00", "17:00"),
	}
	busy := []models.BusyPeriod{{
		Start: utcDate(2025, time.March, 10, 10, 0),
		End:   utcDate(2025, time.March, 10, 11, 0),
	}}

	first := ComputeAvailableSlots(windows, busy, nil, singleDayRange(monday2025Mar10), cfg, models.BookingKindFree, now)
	second := ComputeAvailableSlots(windows, busy, nil, singleDayRange(monday2025Mar10), cfg, models.BookingKindFree, now)
	assert.Equal(t, first, second)
}

func TestComputeAvailableSlots_NoSlotOverlapsAnyInput(t *testing.T) {
	// Randomized fixtures: whatever busy periods and bookings we throw in,
	// no returned slot may intersect any of them.
	rnd := rand.New(rand.NewSource(42))
	cfg := models.SlotConfig{FreeDurationMinutes: 30, BufferMinutes: 0, AdvanceNoticeHours: 1}
	now := utcDate(2025, time.March, 3, 0, 0)
	windows := []models.AvailabilityWindow{mondayWindow("08:00", "18:00")}

	for i := 0; i < 50; i++ {
		var busy []models.BusyPeriod
		var bookings []models.Booking
		nBusy, nBookings := rnd.Intn(6), rnd.Intn(4)
		for j := 0; j < nBusy; j++ {
			start := utcDate(2025, time.March, 10, 8+rnd.Intn(9), 15*rnd.Intn(4))
			busy = append(busy, models.BusyPeriod{Start: start, End: start.Add(time.Duration(15+rnd.Intn(90)) * time.Minute)})
		}
		for j := 0; j < nBookings; j++ {
			start := utcDate(2025, time.March, 10, 8+rnd.Intn(9), 15*rnd.Intn(4))
			bookings = append(bookings, models.Booking{
				ScheduledAt:     start,
				DurationMinutes: 15 + rnd.Intn(60),
				Status:          models.BookingStatusConfirmed,
			})
		}

		slots := ComputeAvailableSlots(windows, busy, bookings, singleDayRange(monday2025Mar10), cfg, models.BookingKindFree, now)
		for _, s := range slots {
			for _, b := range busy {
				assert.False(t, s.Overlaps(b.Start, b.End),
					"slot %v-%v overlaps busy %v-%v", s.Start, s.End, b.Start, b.End)
			}
			for _, b := range bookings {
				assert.False(t, s.Overlaps(b.ScheduledAt, b.End()),
					"slot %v-%v overlaps booking %v", s.Start, s.End, b.ScheduledAt)
			}
		}
	}
}

func TestComputeAvailableSlots_MultiDayRangeSorted(t *testing.T) {
	windows := []models.AvailabilityWindow{
		mondayWindow("09:00", "10:00"),
		{ID: "w2", DayOfWeek: 2, StartTime: "11:00", EndTime: "12:00", Timezone: "UTC", IsActive: true},
	}
	cfg := models.SlotConfig{FreeDurationMinutes: 30, AdvanceNoticeHours: 1}
	now := utcDate(2025, time.March, 3, 0, 0)
	rng := models.DateRange{Start: monday2025Mar10, End: utcDate(2025, time.March, 11, 0, 0)}

	slots := ComputeAvailableSlots(windows, nil, nil, rng, cfg, models.BookingKindFree, now)

	require.Len(t, slots, 4)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start.Before(slots[i].Start))
	}
	assert.Equal(t, utcDate(2025, time.March, 11, 11, 0), slots[2].Start)
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)

	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd", "12-30"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}
