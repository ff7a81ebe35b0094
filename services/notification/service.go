package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	profileRepo "spritz/database/repository/profile"
	"spritz/utils"
)

// DefaultNotificationService is the production implementation. Push targets
// come from the FCM token stored on the user's scheduling profile.
type DefaultNotificationService struct {
	Profiles profileRepo.ProfileRepository
}

func NewDefaultNotificationService(profiles profileRepo.ProfileRepository) *DefaultNotificationService {
	return &DefaultNotificationService{Profiles: profiles}
}

// SendPushNotification looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendPushNotification(ctx context.Context, address, title, body string, data map[string]string) error {
	profile, err := s.Profiles.GetByUser(ctx, address)
	if err != nil {
		return fmt.Errorf("SendPushNotification: could not load profile for %s: %w", address, err)
	}
	if profile == nil || profile.FCMToken == "" {
		return fmt.Errorf("SendPushNotification: user %s has no FCM token", address)
	}

	msg := &messaging.Message{
		Token: profile.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPushNotification: failed to send FCM message: %w", err)
	}
	return nil
}

// NotifyBookingConfirmed pushes a confirmation to both parties. Missing push
// targets fail silently; confirmation pushes are a courtesy, not a record.
func (s *DefaultNotificationService) NotifyBookingConfirmed(ctx context.Context, hostAddress, guestAddress, topic, slotStart string) error {
	data := map[string]string{
		"type":      "booking_confirmed",
		"slotStart": slotStart,
	}

	hostBody := fmt.Sprintf("You have a new booking at %s", slotStart)
	if topic != "" {
		hostBody = fmt.Sprintf("You have a new booking at %s: %s", slotStart, topic)
	}
	if err := s.SendPushNotification(ctx, hostAddress, "New booking 🗓️", hostBody, data); err != nil {
		utils.GetLogger().Sugar().Debugf("host confirmation push skipped: %v", err)
	}

	guestBody := fmt.Sprintf("Your booking at %s is confirmed", slotStart)
	if err := s.SendPushNotification(ctx, guestAddress, "Booking confirmed", guestBody, data); err != nil {
		utils.GetLogger().Sugar().Debugf("guest confirmation push skipped: %v", err)
	}
	return nil
}
