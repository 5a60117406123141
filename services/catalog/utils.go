package catalog

import (
	"context"
	"errors"
	"strings"

	"taskhive/database/repository"
	"taskhive/models"
	"taskhive/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// authorizeTasker loads a tasker and checks that the actor owns it.
func (s *DefaultCatalogService) authorizeTasker(ctx context.Context, actor models.Identity, taskerID string) (*models.Tasker, error) {
	t, err := s.TaskerRepo.GetByID(ctx, taskerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.ErrNotFound("Tasker")
	}
	if err != nil {
		s.Logger.Error("authorizeTasker: lookup failed", zap.String("taskerId", taskerID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	if !actor.IsAdmin() && t.UserID != actor.UserID {
		return nil, utils.ErrForbidden("You do not own this tasker profile")
	}
	return t, nil
}

func (s *DefaultCatalogService) getService(ctx context.Context, serviceID string) (*models.Service, error) {
	svc, err := s.Repo.GetByID(ctx, serviceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.ErrNotFound("Service")
	}
	if err != nil {
		s.Logger.Error("getService: lookup failed", zap.String("serviceId", serviceID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	return svc, nil
}

// authorizeService loads a service and checks that the actor owns its tasker.
func (s *DefaultCatalogService) authorizeService(ctx context.Context, actor models.Identity, serviceID string) (*models.Service, error) {
	svc, err := s.getService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return svc, nil
	}
	t, err := s.TaskerRepo.GetByID(ctx, svc.TaskerID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.Logger.Error("authorizeService: tasker lookup failed", zap.String("serviceId", serviceID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	if t == nil || t.UserID != actor.UserID {
		return nil, utils.ErrForbidden("You do not own this service")
	}
	return svc, nil
}

// update performs a versioned write and returns the stored result.
func (s *DefaultCatalogService) update(ctx context.Context, svc *models.Service, clientVersion *int64, set bson.M) (*models.Service, error) {
	if clientVersion != nil && *clientVersion != svc.Version {
		return nil, utils.ErrConflict("Service was modified by another request; reload and retry")
	}
	err := s.Repo.UpdateVersioned(ctx, svc.ID, svc.Version, set)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, utils.ErrNotFound("Service")
	case errors.Is(err, repository.ErrVersionConflict):
		return nil, utils.ErrConflict("Service was modified by another request; reload and retry")
	case err != nil:
		s.Logger.Error("update: write failed", zap.String("serviceId", svc.ID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	return s.getService(ctx, svc.ID)
}

// annotate replaces stored rating fields with values derived from completed bookings.
func (s *DefaultCatalogService) annotate(ctx context.Context, services []*models.Service) error {
	if len(services) == 0 {
		return nil
	}
	ids := make([]string, len(services))
	for i, svc := range services {
		ids[i] = svc.ID
	}
	ratings, err := s.BookingRepo.RatingsByService(ctx, ids)
	if err != nil {
		return err
	}
	for _, svc := range services {
		r := ratings[svc.ID]
		svc.Rating = r.Rating
		svc.JobsCompleted = r.JobsCompleted
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[strings.ToLower(tag)] {
			continue
		}
		seen[strings.ToLower(tag)] = true
		out = append(out, tag)
	}
	return out
}
