package userRepo

import (
	"context"
	"time"

	"taskhive/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	UpdateFields(ctx context.Context, id string, set bson.M) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, search models.UserSearch) ([]models.User, int64, error)
	Count(ctx context.Context, role string, since time.Time) (int64, error)
}
