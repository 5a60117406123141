package booking

import (
	"context"
	"time"

	bookingRepo "taskhive/database/repository/booking"
	serviceRepo "taskhive/database/repository/service"
	taskerRepo "taskhive/database/repository/tasker"
	userRepo "taskhive/database/repository/user"
	"taskhive/models"
	"taskhive/services/notification"
	"taskhive/services/tasks"

	"go.uber.org/zap"
)

// BookingService owns the booking lifecycle.
type BookingService interface {
	// CreateBooking reports created=false when an idempotency key replays an earlier booking.
	CreateBooking(ctx context.Context, actor *models.Identity, req models.CreateBookingRequest) (view *models.BookingView, created bool, err error)
	GetBooking(ctx context.Context, actor models.Identity, bookingID string) (*models.BookingView, error)
	UpdateBookingStatus(ctx context.Context, actor models.Identity, bookingID string, req models.UpdateBookingStatusRequest) (*models.BookingView, error)
	AddFeedback(ctx context.Context, actor models.Identity, bookingID string, req models.FeedbackRequest) (*models.FeedbackResult, error)
	ListByTasker(ctx context.Context, actor models.Identity, taskerID string, filter models.BookingFilter) (*models.BookingPage, error)
	ListByCustomer(ctx context.Context, actor models.Identity, identifier string, filter models.BookingFilter) (*models.BookingPage, error)
	ListAll(ctx context.Context, filter models.BookingFilter) (*models.BookingPage, error)
	Stats(ctx context.Context) (*models.BookingStats, error)
	CreatePaymentIntent(ctx context.Context, actor models.Identity, bookingID string) (*models.PaymentIntent, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo        bookingRepo.BookingRepository
	ServiceRepo serviceRepo.ServiceRepository
	TaskerRepo  taskerRepo.TaskerRepository
	UserRepo    userRepo.UserRepository
	Scheduler   tasks.Scheduler
	Notifier    notification.NotificationService
	Payments    PaymentGateway
	Currency    string
	Logger      *zap.Logger
	Now         func() time.Time
}

func NewDefaultBookingService(
	repo bookingRepo.BookingRepository,
	services serviceRepo.ServiceRepository,
	taskers taskerRepo.TaskerRepository,
	users userRepo.UserRepository,
	scheduler tasks.Scheduler,
	notifier notification.NotificationService,
	payments PaymentGateway,
	currency string,
	logger *zap.Logger,
) *DefaultBookingService {
	if notifier == nil {
		notifier = notification.NoopNotificationService{}
	}
	return &DefaultBookingService{
		Repo:        repo,
		ServiceRepo: services,
		TaskerRepo:  taskers,
		UserRepo:    users,
		Scheduler:   scheduler,
		Notifier:    notifier,
		Payments:    payments,
		Currency:    currency,
		Logger:      logger,
		Now:         time.Now,
	}
}
