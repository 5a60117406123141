package taskerRepo

import (
	"context"
	"time"

	"taskhive/models"

	"go.mongodb.org/mongo-driver/bson"
)

// TaskerRepository defines persistence for tasker profiles.
type TaskerRepository interface {
	Create(ctx context.Context, tasker *models.Tasker) error
	GetByID(ctx context.Context, id string) (*models.Tasker, error)
	GetByUserID(ctx context.Context, userID string) (*models.Tasker, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Tasker, error)
	GetProfileByUserID(ctx context.Context, userID string) (*models.TaskerProfile, error)
	ExistsForUser(ctx context.Context, userID string) (bool, error)
	UpdateFields(ctx context.Context, id string, set bson.M) error
	DeleteByUserID(ctx context.Context, userID string) error
	List(ctx context.Context, search models.TaskerSearch) ([]models.TaskerProfile, int64, error)
	Count(ctx context.Context, status string, since time.Time) (int64, error)
}
