package notification

import "context"

// NotificationService delivers push messages to users.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// NoopNotificationService is used when push messaging is not configured.
type NoopNotificationService struct{}

func (NoopNotificationService) SendUserPushNotification(context.Context, string, string, string, map[string]string) error {
	return nil
}
