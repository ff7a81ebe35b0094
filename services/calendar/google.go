package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"spritz/config"
	integrationRepo "spritz/database/repository/integration"
	"spritz/models"
)

// GoogleBusySource implements BusySource against the Google Calendar
// FreeBusy API.
type GoogleBusySource struct {
	Integrations integrationRepo.IntegrationRepository
}

func NewGoogleBusySource(integrations integrationRepo.IntegrationRepository) *GoogleBusySource {
	return &GoogleBusySource{Integrations: integrations}
}

func oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.AppConfig.GoogleClientID,
		ClientSecret: config.AppConfig.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gcal.CalendarReadonlyScope},
	}
}

// GetBusyPeriods runs a FreeBusy query for the integration's calendar. An
// expired access token gets exactly one refresh attempt; the refreshed token
// is written back best-effort. Any failure surfaces as an error the caller
// treats as fail-open.
func (g *GoogleBusySource) GetBusyPeriods(ctx context.Context, integration models.CalendarIntegration, from, to time.Time) ([]models.BusyPeriod, error) {
	tok := &oauth2.Token{
		AccessToken:  integration.AccessToken,
		RefreshToken: integration.RefreshToken,
		Expiry:       integration.TokenExpiry,
	}

	if !tok.Valid() {
		fresh, err := oauthConfig().TokenSource(ctx, tok).Token()
		if err != nil {
			return nil, fmt.Errorf("refresh calendar token: %w", err)
		}
		tok = fresh
		// Persisting the refreshed token is best-effort; a stale stored
		// token only costs another refresh on the next fetch.
		_ = g.Integrations.UpdateTokens(ctx, integration.UserAddress, fresh.AccessToken, fresh.RefreshToken, fresh.Expiry)
	}

	svc, err := gcal.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(tok)))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	calendarID := integration.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	req := &gcal.FreeBusyRequest{
		TimeMin: from.UTC().Format(time.RFC3339),
		TimeMax: to.UTC().Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: calendarID}},
	}
	resp, err := svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	return BusyPeriodsFromResponse(resp, calendarID)
}

// BusyPeriodsFromResponse maps a FreeBusy response onto domain busy periods.
func BusyPeriodsFromResponse(resp *gcal.FreeBusyResponse, calendarID string) ([]models.BusyPeriod, error) {
	cal, ok := resp.Calendars[calendarID]
	if !ok {
		return nil, nil
	}
	var periods []models.BusyPeriod
	for _, p := range cal.Busy {
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			return nil, fmt.Errorf("parse busy start %q: %w", p.Start, err)
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			return nil, fmt.Errorf("parse busy end %q: %w", p.End, err)
		}
		periods = append(periods, models.BusyPeriod{Start: start.UTC(), End: end.UTC()})
	}
	return periods, nil
}
