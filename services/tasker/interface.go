package tasker

import (
	"context"

	taskerRepo "taskhive/database/repository/tasker"
	userRepo "taskhive/database/repository/user"
	"taskhive/models"

	"go.uber.org/zap"
)

// TaskerService manages tasker profiles and their moderation.
type TaskerService interface {
	CreateProfile(ctx context.Context, userID string, req models.CreateTaskerProfileRequest) (*models.TaskerProfile, error)
	GetProfile(ctx context.Context, userID string) (*models.TaskerProfile, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateTaskerProfileRequest) (*models.TaskerProfile, error)
	ProfileExists(ctx context.Context, userID string) (bool, error)
	ListTaskers(ctx context.Context, search models.TaskerSearch) (models.Page[models.TaskerProfile], error)
	ReviewTasker(ctx context.Context, taskerID, status, notes, adminID string) (*models.Tasker, error)
}

// ImageDiscarder drops images that a profile no longer references.
type ImageDiscarder interface {
	Discard(ctx context.Context, imageURL string)
}

// DefaultTaskerService implements TaskerService.
type DefaultTaskerService struct {
	Repo     taskerRepo.TaskerRepository
	UserRepo userRepo.UserRepository
	Images   ImageDiscarder
	Logger   *zap.Logger
}

func NewDefaultTaskerService(repo taskerRepo.TaskerRepository, users userRepo.UserRepository, images ImageDiscarder, logger *zap.Logger) *DefaultTaskerService {
	return &DefaultTaskerService{Repo: repo, UserRepo: users, Images: images, Logger: logger}
}
