package notification

import (
	"context"
	"testing"
	"time"

	"taskhive/database/repository"
	"taskhive/models"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type stubUsers struct {
	users map[string]*models.User
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUsers) Create(context.Context, *models.User) error { return nil }
func (s *stubUsers) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, repository.ErrNotFound
}
func (s *stubUsers) GetByIDs(context.Context, []string) ([]models.User, error) { return nil, nil }
func (s *stubUsers) UpdateFields(context.Context, string, bson.M) error        { return nil }
func (s *stubUsers) Delete(context.Context, string) error                      { return nil }
func (s *stubUsers) List(context.Context, models.UserSearch) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (s *stubUsers) Count(context.Context, string, time.Time) (int64, error) { return 0, nil }

type recordingSender struct {
	sent []*messaging.Message
}

func (r *recordingSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	r.sent = append(r.sent, m)
	return "msg-1", nil
}

func TestSendUserPushNotification(t *testing.T) {
	users := &stubUsers{users: map[string]*models.User{
		"u1": {ID: "u1", Role: models.RoleUser, FCMToken: "device-token"},
		"u2": {ID: "u2", Role: models.RoleUser},
	}}
	sender := &recordingSender{}
	svc := NewFCMNotificationService(users, sender, zap.NewNop())

	require.NoError(t, svc.SendUserPushNotification(context.Background(), "u1", "Hi", "Body", nil))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "device-token", sender.sent[0].Token)
	assert.Equal(t, "user", sender.sent[0].Data["role"])

	err := svc.SendUserPushNotification(context.Background(), "u2", "Hi", "Body", nil)
	assert.ErrorIs(t, err, ErrNoDeviceToken)

	err = svc.SendUserPushNotification(context.Background(), "missing", "Hi", "Body", nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
