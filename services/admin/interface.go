package admin

import (
	"context"
	"time"

	bookingRepo "taskhive/database/repository/booking"
	serviceRepo "taskhive/database/repository/service"
	taskerRepo "taskhive/database/repository/tasker"
	userRepo "taskhive/database/repository/user"
	"taskhive/models"
	"taskhive/services/tasker"

	"go.uber.org/zap"
)

// AdminService backs the admin dashboard and account moderation.
type AdminService interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	ListUsers(ctx context.Context, search models.UserSearch) (models.Page[models.User], error)
	ListTaskers(ctx context.Context, search models.TaskerSearch) (models.Page[models.TaskerProfile], error)
	ApprovalQueue(ctx context.Context, search models.TaskerSearch) (models.Page[models.TaskerProfile], error)
	ApproveTasker(ctx context.Context, adminID, taskerID, notes string) (*models.Tasker, error)
	RejectTasker(ctx context.Context, adminID, taskerID, notes string) (*models.Tasker, error)
	SuspendUser(ctx context.Context, adminID, userID string) (*models.User, error)
	ActivateUser(ctx context.Context, adminID, userID string) (*models.User, error)
	DeleteUser(ctx context.Context, adminID, userID string) error
}

// DefaultAdminService implements AdminService.
type DefaultAdminService struct {
	Users    userRepo.UserRepository
	Taskers  taskerRepo.TaskerRepository
	Services serviceRepo.ServiceRepository
	Bookings bookingRepo.BookingRepository
	Profiles tasker.TaskerService
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewDefaultAdminService(
	users userRepo.UserRepository,
	taskers taskerRepo.TaskerRepository,
	services serviceRepo.ServiceRepository,
	bookings bookingRepo.BookingRepository,
	profiles tasker.TaskerService,
	logger *zap.Logger,
) *DefaultAdminService {
	return &DefaultAdminService{
		Users:    users,
		Taskers:  taskers,
		Services: services,
		Bookings: bookings,
		Profiles: profiles,
		Logger:   logger,
		Now:      time.Now,
	}
}
