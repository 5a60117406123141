package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"taskhive/models"
	"taskhive/services/notification"
	"taskhive/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// MediaDeleter removes assets from the media host.
type MediaDeleter interface {
	DeleteFile(ctx context.Context, publicID string) error
}

// Worker processes booking reminders and media cleanup.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewWorker(redisOpt asynq.RedisClientOpt, media MediaDeleter, notifier notification.NotificationService, logger *zap.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
		Logger:      logger.Sugar(),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, handleReminderTask(notifier, logger))
	if media != nil {
		mux.HandleFunc(tasks.TypeMediaDelete, handleMediaDeleteTask(media, logger))
	}

	return &Worker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background.
func (w *Worker) Start() error {
	if err := w.srv.Start(w.mux); err != nil {
		return fmt.Errorf("failed to start task worker: %w", err)
	}
	w.logger.Info("Task worker started")
	return nil
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func handleReminderTask(notifier notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
		}

		data := map[string]string{"bookingId": p.BookingID, "type": "booking_reminder"}
		err := notifier.SendUserPushNotification(ctx, p.UserID, p.Title, p.Body, data)
		if errors.Is(err, notification.ErrNoDeviceToken) {
			logger.Debug("Reminder skipped, no device", zap.String("bookingId", p.BookingID))
			return nil
		}
		if err != nil {
			logger.Warn("Reminder delivery failed", zap.String("bookingId", p.BookingID), zap.Error(err))
		}
		return err
	}
}

func handleMediaDeleteTask(media MediaDeleter, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.MediaDeletePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil || p.PublicID == "" {
			return fmt.Errorf("invalid media payload: %w", asynq.SkipRetry)
		}
		if err := media.DeleteFile(ctx, p.PublicID); err != nil {
			logger.Warn("Media cleanup failed", zap.String("publicId", p.PublicID), zap.Error(err))
			return err
		}
		logger.Info("Media deleted", zap.String("publicId", p.PublicID))
		return nil
	}
}
