// Package calendar sources busy periods from a host's connected calendar.
// Implementations fail soft: the scheduling service treats any error as
// "no busy periods" rather than blocking availability.
package calendar

import (
	"context"
	"time"

	"spritz/models"
)

// BusySource fetches the intervals during which a host is busy according to
// an external calendar provider.
type BusySource interface {
	GetBusyPeriods(ctx context.Context, integration models.CalendarIntegration, from, to time.Time) ([]models.BusyPeriod, error)
}
