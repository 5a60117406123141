package notification

import (
	"context"
	"errors"
	"fmt"

	userRepo "taskhive/database/repository/user"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// ErrNoDeviceToken means the user never registered a device.
var ErrNoDeviceToken = errors.New("user has no FCM token")

// Sender is satisfied by *messaging.Client.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NewFCMClient initializes the Firebase app and its messaging client.
func NewFCMClient(ctx context.Context, credentialsFile string) (*messaging.Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}
	return client, nil
}

// FCMNotificationService looks up a user's device token and pushes through FCM.
type FCMNotificationService struct {
	users  userRepo.UserRepository
	sender Sender
	logger *zap.Logger
}

func NewFCMNotificationService(users userRepo.UserRepository, sender Sender, logger *zap.Logger) *FCMNotificationService {
	return &FCMNotificationService{users: users, sender: sender, logger: logger}
}

func (s *FCMNotificationService) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return ErrNoDeviceToken
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = u.Role
	}

	msg := &messaging.Message{
		Token:        u.FCMToken,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
		Android: &messaging.AndroidConfig{
			Priority:     "high",
			Notification: &messaging.AndroidNotification{Sound: "default"},
		},
	}

	id, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send FCM message: %w", err)
	}
	s.logger.Debug("Push notification sent", zap.String("userId", userID), zap.String("messageId", id))
	return nil
}
