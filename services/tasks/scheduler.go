package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskhive/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Scheduler queues background work produced by request handling.
type Scheduler interface {
	ScheduleBookingReminder(ctx context.Context, booking *models.Booking) error
	ScheduleMediaDelete(ctx context.Context, publicID string) error
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqScheduler enqueues tasks on the Redis-backed asynq queue.
type AsynqScheduler struct {
	client       Enqueuer
	reminderLead time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

func NewAsynqScheduler(client Enqueuer, reminderLead time.Duration, logger *zap.Logger) *AsynqScheduler {
	return &AsynqScheduler{client: client, reminderLead: reminderLead, logger: logger, now: time.Now}
}

// ScheduleBookingReminder fires reminderLead before the preferred date. Reminders
// that would already be due are skipped.
func (s *AsynqScheduler) ScheduleBookingReminder(ctx context.Context, booking *models.Booking) error {
	fireAt := booking.PreferredDate.Add(-s.reminderLead)
	if !fireAt.After(s.now()) {
		return nil
	}

	payload := models.ReminderPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Title:     "Upcoming booking",
		Body:      fmt.Sprintf("Your booking at %s is scheduled for %s.", booking.ServiceLocation, booking.PreferredDate.Format("Mon Jan 2")),
	}
	task, opts, err := NewBookingReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	s.logger.Debug("Booking reminder scheduled", zap.String("bookingId", booking.ID), zap.Time("fireAt", fireAt))
	return nil
}

func (s *AsynqScheduler) ScheduleMediaDelete(ctx context.Context, publicID string) error {
	task, opts, err := NewMediaDeleteTask(models.MediaDeletePayload{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to build media delete task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue media delete: %w", err)
	}
	return nil
}
