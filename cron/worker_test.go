package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"taskhive/models"
	"taskhive/services/notification"
	"taskhive/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	calls []string
	err   error
}

func (f *fakeNotifier) SendUserPushNotification(_ context.Context, userID, _, _ string, data map[string]string) error {
	f.calls = append(f.calls, userID+":"+data["bookingId"])
	return f.err
}

type fakeMedia struct {
	deleted []string
	err     error
}

func (f *fakeMedia) DeleteFile(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return f.err
}

func reminderTask(t *testing.T) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(models.ReminderPayload{BookingID: "b1", UserID: "u1", Title: "t", Body: "b"})
	require.NoError(t, err)
	return asynq.NewTask(tasks.TypeBookingReminder, b)
}

func TestReminderHandlerSendsPush(t *testing.T) {
	n := &fakeNotifier{}
	err := handleReminderTask(n, zap.NewNop())(context.Background(), reminderTask(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"u1:b1"}, n.calls)
}

func TestReminderHandlerIgnoresMissingDevice(t *testing.T) {
	n := &fakeNotifier{err: notification.ErrNoDeviceToken}
	assert.NoError(t, handleReminderTask(n, zap.NewNop())(context.Background(), reminderTask(t)))
}

func TestReminderHandlerRejectsBadPayload(t *testing.T) {
	err := handleReminderTask(&fakeNotifier{}, zap.NewNop())(context.Background(), asynq.NewTask(tasks.TypeBookingReminder, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestMediaDeleteHandler(t *testing.T) {
	media := &fakeMedia{}
	task := asynq.NewTask(tasks.TypeMediaDelete, []byte(`{"publicId":"x/y"}`))
	require.NoError(t, handleMediaDeleteTask(media, zap.NewNop())(context.Background(), task))
	assert.Equal(t, []string{"x/y"}, media.deleted)

	media.err = errors.New("boom")
	assert.Error(t, handleMediaDeleteTask(media, zap.NewNop())(context.Background(), task))

	empty := asynq.NewTask(tasks.TypeMediaDelete, []byte(`{}`))
	assert.ErrorIs(t, handleMediaDeleteTask(media, zap.NewNop())(context.Background(), empty), asynq.SkipRetry)
}
