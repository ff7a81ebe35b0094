package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"spritz/models"
	"spritz/utils"
)

// PaymentProvider opens and cancels payment intents for paid bookings.
type PaymentProvider interface {
	CreateIntent(profile *models.SchedulingProfile, guestAddress string, slot models.AvailableSlot) (id, clientSecret string, err error)
	CancelIntent(id string)
}

// StripeProvider is the production PaymentProvider. stripe.Key is set once in
// main from config.
type StripeProvider struct{}

// CreateIntent opens a Stripe payment intent for a paid booking session. The
// intent is confirmed client-side with the returned secret; cancellation of
// the session cancels the intent.
func (StripeProvider) CreateIntent(profile *models.SchedulingProfile, guestAddress string, slot models.AvailableSlot) (id, clientSecret string, err error) {
	if profile.PaidPriceCents <= 0 {
		return "", "", NewValidationError("host has no paid booking price configured")
	}
	currency := strings.ToLower(profile.Currency)
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(profile.PaidPriceCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("hostAddress", profile.UserAddress)
	params.AddMetadata("guestAddress", guestAddress)
	params.AddMetadata("slotStart", slot.Start.UTC().Format(time.RFC3339))

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return pi.ID, pi.ClientSecret, nil
}

// CancelIntent is best-effort; an orphaned intent expires on its own.
func (StripeProvider) CancelIntent(id string) {
	if id == "" {
		return
	}
	if _, err := paymentintent.Cancel(id, nil); err != nil {
		utils.GetLogger().Warn("failed to cancel payment intent",
			zap.String("paymentIntent", id), zap.Error(err))
	}
}
