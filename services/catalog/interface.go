package catalog

import (
	"context"

	bookingRepo "taskhive/database/repository/booking"
	serviceRepo "taskhive/database/repository/service"
	taskerRepo "taskhive/database/repository/tasker"
	"taskhive/models"

	"go.uber.org/zap"
)

// CatalogService owns service listings and their moderation state machine.
type CatalogService interface {
	CreateService(ctx context.Context, actor models.Identity, taskerID string, req models.CreateServiceRequest) (*models.Service, error)
	GetService(ctx context.Context, serviceID string) (*models.ServiceListing, error)
	UpdateService(ctx context.Context, actor models.Identity, serviceID string, req models.UpdateServiceRequest) (*models.Service, error)
	ToggleActivation(ctx context.Context, actor models.Identity, serviceID string) (*models.Service, error)
	DeleteService(ctx context.Context, actor models.Identity, serviceID string) error
	AdminReview(ctx context.Context, adminID, serviceID string, req models.ServiceReviewRequest) (*models.Service, error)
	ListPublicServices(ctx context.Context, filter models.PublicServiceFilter) ([]models.ServiceListing, error)
	ListByTasker(ctx context.Context, actor models.Identity, taskerID string) ([]models.Service, error)
	ServiceStats(ctx context.Context, actor models.Identity, taskerID string) (*models.ServiceStats, error)
	ListAll(ctx context.Context, search models.ServiceSearch) (models.Page[models.Service], error)
	ListPending(ctx context.Context, page, limit int) (models.Page[models.Service], error)
	Categories() []string
}

// ImageDiscarder drops images a listing no longer references.
type ImageDiscarder interface {
	Discard(ctx context.Context, imageURL string)
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Repo        serviceRepo.ServiceRepository
	TaskerRepo  taskerRepo.TaskerRepository
	BookingRepo bookingRepo.BookingRepository
	Images      ImageDiscarder
	Logger      *zap.Logger
}

func NewDefaultCatalogService(repo serviceRepo.ServiceRepository, taskers taskerRepo.TaskerRepository, bookings bookingRepo.BookingRepository, images ImageDiscarder, logger *zap.Logger) *DefaultCatalogService {
	return &DefaultCatalogService{Repo: repo, TaskerRepo: taskers, BookingRepo: bookings, Images: images, Logger: logger}
}

func (s *DefaultCatalogService) Categories() []string {
	out := make([]string, len(models.ServiceCategories))
	copy(out, models.ServiceCategories)
	return out
}
