package scheduling

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"spritz/models"
)

// ComputeAvailableSlots derives the bookable slots for a host over the given
// date range. It is a pure function over its inputs: callers fetch windows,
// bookings, and busy periods, and pass a fixed `now` so repeated calls with
// identical inputs yield identical output.
//
// A returned slot never overlaps a busy period or an existing booking, starts
// no earlier than now + advanceNoticeHours, and fits entirely within an
// active window for its day-of-week.
func ComputeAvailableSlots(
	windows []models.AvailabilityWindow,
	busy []models.BusyPeriod,
	bookings []models.Booking,
	rng models.DateRange,
	cfg models.SlotConfig,
	kind string,
	now time.Time,
) []models.AvailableSlot {
	duration := cfg.FreeDurationMinutes
	if kind == models.BookingKindPaid && cfg.PaidDurationMinutes > 0 {
		duration = cfg.PaidDurationMinutes
	}
	if duration <= 0 {
		return nil
	}

	refLoc := ReferenceLocation(windows)
	cutoff := now.Add(time.Duration(cfg.AdvanceNoticeHours) * time.Hour)
	slotLen := time.Duration(duration) * time.Minute
	step := time.Duration(duration+cfg.BufferMinutes) * time.Minute

	var slots []models.AvailableSlot

	// Walk calendar days in the host's reference timezone. Day-of-week is
	// deliberately computed in the reference zone even when an individual
	// window carries a different zone; each window's wall-clock times are
	// then converted using its own zone for that reference date.
	start := rng.Start.In(refLoc)
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, refLoc)
	end := rng.End.In(refLoc)

	for ; !day.After(end); day = day.AddDate(0, 0, 1) {
		for _, w := range windows {
			if !w.IsActive || time.Weekday(w.DayOfWeek) != day.Weekday() {
				continue
			}

			winStart, winEnd, err := windowInstants(w, day)
			if err != nil {
				continue
			}
			// An occurrence already inside the notice period is dropped whole.
			if winStart.Before(cutoff) {
				continue
			}

			for s := winStart; !s.Add(step).After(winEnd); s = s.Add(step) {
				slot := models.AvailableSlot{Start: s, End: s.Add(slotLen)}
				if overlapsBusy(slot, busy) || overlapsBooking(slot, bookings) {
					continue
				}
				slots = append(slots, slot)
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots
}

// ReferenceLocation resolves the host's reference timezone: the first
// window's zone, defaulting to UTC when absent or unparseable.
func ReferenceLocation(windows []models.AvailabilityWindow) *time.Location {
	if len(windows) == 0 {
		return time.UTC
	}
	loc, err := time.LoadLocation(windows[0].Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// windowInstants converts a window's wall-clock bounds on the given calendar
// date into UTC instants, using the window's own timezone.
func windowInstants(w models.AvailabilityWindow, day time.Time) (time.Time, time.Time, error) {
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("window %s: bad timezone %q: %w", w.ID, w.Timezone, err)
	}
	startH, startM, err := ParseClock(w.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("window %s: %w", w.ID, err)
	}
	endH, endM, err := ParseClock(w.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("window %s: %w", w.ID, err)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), startH, startM, 0, 0, loc).UTC()
	end := time.Date(day.Year(), day.Month(), day.Day(), endH, endM, 0, 0, loc).UTC()
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("window %s: end not after start", w.ID)
	}
	return start, end, nil
}

// ParseClock parses an "HH:MM" wall-clock string.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed clock time %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("malformed clock time %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("malformed clock time %q", s)
	}
	return hour, minute, nil
}

func overlapsBusy(slot models.AvailableSlot, busy []models.BusyPeriod) bool {
	for _, b := range busy {
		if slot.Overlaps(b.Start, b.End) {
			return true
		}
	}
	return false
}

func overlapsBooking(slot models.AvailableSlot, bookings []models.Booking) bool {
	for _, b := range bookings {
		if b.Status == models.BookingStatusCancelled {
			continue
		}
		if slot.Overlaps(b.ScheduledAt, b.End()) {
			return true
		}
	}
	return false
}
