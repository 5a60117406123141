package serviceRepo

import (
	"context"

	"taskhive/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ServiceRepository defines persistence for service listings.
type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Service, error)
	// UpdateVersioned applies set only if the stored version still equals
	// expectedVersion, and increments the version.
	UpdateVersioned(ctx context.Context, id string, expectedVersion int64, set bson.M) error
	Delete(ctx context.Context, id string) error
	ListByTasker(ctx context.Context, taskerID string) ([]models.Service, error)
	IDsByTasker(ctx context.Context, taskerID string) ([]string, error)
	ListPublic(ctx context.Context, filter models.PublicServiceFilter) ([]models.ServiceListing, error)
	List(ctx context.Context, search models.ServiceSearch) ([]models.Service, int64, error)
	Count(ctx context.Context, state, status string) (int64, error)
}
