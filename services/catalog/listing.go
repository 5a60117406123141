package catalog

import (
	"context"
	"math"
	"strings"

	"taskhive/models"
	"taskhive/utils"

	"go.uber.org/zap"
)

// ListPublicServices returns active, approved listings annotated with
// booking-derived ratings.
func (s *DefaultCatalogService) ListPublicServices(ctx context.Context, filter models.PublicServiceFilter) ([]models.ServiceListing, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Category != "" && !models.IsServiceCategory(filter.Category) {
		return nil, utils.ErrValidation("Unknown service category")
	}
	listings, err := s.Repo.ListPublic(ctx, filter)
	if err != nil {
		s.Logger.Error("ListPublicServices: query failed", zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	ptrs := make([]*models.Service, len(listings))
	for i := range listings {
		ptrs[i] = &listings[i].Service
	}
	if err := s.annotate(ctx, ptrs); err != nil {
		s.Logger.Error("ListPublicServices: rating lookup failed", zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	return listings, nil
}

func (s *DefaultCatalogService) ListByTasker(ctx context.Context, actor models.Identity, taskerID string) ([]models.Service, error) {
	if _, err := s.authorizeTasker(ctx, actor, taskerID); err != nil {
		return nil, err
	}
	return s.taskerServices(ctx, taskerID)
}

func (s *DefaultCatalogService) taskerServices(ctx context.Context, taskerID string) ([]models.Service, error) {
	services, err := s.Repo.ListByTasker(ctx, taskerID)
	if err != nil {
		s.Logger.Error("taskerServices: query failed", zap.String("taskerId", taskerID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	if err := s.annotateSlice(ctx, services); err != nil {
		s.Logger.Error("taskerServices: rating lookup failed", zap.String("taskerId", taskerID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	return services, nil
}

func (s *DefaultCatalogService) annotateSlice(ctx context.Context, services []models.Service) error {
	ptrs := make([]*models.Service, len(services))
	for i := range services {
		ptrs[i] = &services[i]
	}
	return s.annotate(ctx, ptrs)
}

// ServiceStats reduces a tasker's listings into counts and averages.
func (s *DefaultCatalogService) ServiceStats(ctx context.Context, actor models.Identity, taskerID string) (*models.ServiceStats, error) {
	if _, err := s.authorizeTasker(ctx, actor, taskerID); err != nil {
		return nil, err
	}
	services, err := s.taskerServices(ctx, taskerID)
	if err != nil {
		return nil, err
	}

	stats := &models.ServiceStats{Total: len(services)}
	var ratingSum float64
	var rated int
	for _, svc := range services {
		switch svc.Status {
		case models.ServiceStatusActive:
			stats.Active++
		default:
			stats.Inactive++
		}
		switch svc.State {
		case models.ServiceStatePending:
			stats.Pending++
		case models.ServiceStateApproved:
			stats.Approved++
		case models.ServiceStateRejected:
			stats.Rejected++
		}
		if svc.Rating > 0 {
			ratingSum += svc.Rating
			rated++
		}
		stats.TotalJobsCompleted += svc.JobsCompleted
	}
	if rated > 0 {
		stats.AverageRating = round1(ratingSum / float64(rated))
	}
	if stats.Total > 0 {
		stats.AverageJobs = round1(float64(stats.TotalJobsCompleted) / float64(stats.Total))
	}
	return stats, nil
}

func (s *DefaultCatalogService) ListAll(ctx context.Context, search models.ServiceSearch) (models.Page[models.Service], error) {
	items, total, err := s.Repo.List(ctx, search)
	if err != nil {
		s.Logger.Error("ListAll: query failed", zap.Error(err))
		return models.Page[models.Service]{}, utils.ErrServer(err)
	}
	if err := s.annotateSlice(ctx, items); err != nil {
		s.Logger.Error("ListAll: rating lookup failed", zap.Error(err))
		return models.Page[models.Service]{}, utils.ErrServer(err)
	}
	return models.NewPage(items, total, search.Page, search.Limit), nil
}

// ListPending is the service moderation queue.
func (s *DefaultCatalogService) ListPending(ctx context.Context, page, limit int) (models.Page[models.Service], error) {
	return s.ListAll(ctx, models.ServiceSearch{State: models.ServiceStatePending, Page: page, Limit: limit})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
