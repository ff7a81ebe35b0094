package notification

import "context"

// NotificationService sends FCM pushes to scheduling users.
type NotificationService interface {
	SendPushNotification(ctx context.Context, address, title, body string, data map[string]string) error
	NotifyBookingConfirmed(ctx context.Context, hostAddress, guestAddress, topic, slotStart string) error
}
