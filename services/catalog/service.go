package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskhive/database/repository"
	"taskhive/models"
	"taskhive/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateService adds a listing under a tasker. New listings always start
// inactive and pending review, whatever the request carries.
func (s *DefaultCatalogService) CreateService(ctx context.Context, actor models.Identity, taskerID string, req models.CreateServiceRequest) (*models.Service, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.authorizeTasker(ctx, actor, taskerID); err != nil {
		return nil, err
	}

	svc := &models.Service{
		ID:          uuid.NewString(),
		TaskerID:    taskerID,
		Title:       strings.TrimSpace(req.Title),
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		Price:       strings.TrimSpace(req.Price),
		Image:       req.Image,
		Tags:        normalizeTags(req.Tags),
		Status:      models.ServiceStatusInactive,
		State:       models.ServiceStatePending,
	}
	if err := s.Repo.Create(ctx, svc); err != nil {
		s.Logger.Error("CreateService: insert failed", zap.String("taskerId", taskerID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	s.Logger.Info("Service created", zap.String("serviceId", svc.ID), zap.String("taskerId", taskerID))
	return svc, nil
}

// GetService returns a listing with its booking-derived rating. The tasker
// summary is omitted when the owner no longer resolves.
func (s *DefaultCatalogService) GetService(ctx context.Context, serviceID string) (*models.ServiceListing, error) {
	svc, err := s.getService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if err := s.annotate(ctx, []*models.Service{svc}); err != nil {
		s.Logger.Error("GetService: rating lookup failed", zap.String("serviceId", serviceID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}

	listing := &models.ServiceListing{Service: *svc}
	if summary, err := s.taskerSummary(ctx, svc.TaskerID); err == nil {
		listing.Tasker = summary
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.Logger.Warn("GetService: tasker lookup failed", zap.String("serviceId", serviceID), zap.Error(err))
	}
	return listing, nil
}

func (s *DefaultCatalogService) taskerSummary(ctx context.Context, taskerID string) (*models.ServiceTasker, error) {
	t, err := s.TaskerRepo.GetByID(ctx, taskerID)
	if err != nil {
		return nil, err
	}
	p, err := s.TaskerRepo.GetProfileByUserID(ctx, t.UserID)
	if err != nil {
		return nil, err
	}
	return &models.ServiceTasker{
		ID:           p.ID,
		UserID:       p.UserID,
		Name:         p.Name,
		City:         p.City,
		Region:       p.Region,
		Country:      p.Country,
		HourlyRate:   p.HourlyRate,
		ProfileImage: p.ProfileImage,
	}, nil
}

// UpdateService applies a partial edit. Editing an approved listing sends it
// back to review and takes it offline.
func (s *DefaultCatalogService) UpdateService(ctx context.Context, actor models.Identity, serviceID string, req models.UpdateServiceRequest) (*models.Service, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	svc, err := s.authorizeService(ctx, actor, serviceID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		set["price"] = strings.TrimSpace(*req.Price)
	}
	if req.Image != nil {
		set["image"] = *req.Image
	}
	if req.Tags != nil {
		set["tags"] = normalizeTags(*req.Tags)
	}
	if len(set) == 0 {
		return nil, utils.ErrValidation("No fields to update")
	}

	// Any reviewed service goes back into the moderation queue when edited.
	if svc.State == models.ServiceStateApproved || svc.State == models.ServiceStateRejected {
		set["state"] = models.ServiceStatePending
		set["status"] = models.ServiceStatusInactive
		set["reviewedAt"] = nil
		set["reviewNotes"] = ""
		set["reviewedBy"] = ""
	}

	updated, err := s.update(ctx, svc, req.Version, set)
	if err != nil {
		return nil, err
	}
	if s.Images != nil && req.Image != nil && svc.Image != *req.Image {
		s.Images.Discard(ctx, svc.Image)
	}
	return updated, nil
}

// ToggleActivation flips an approved listing between active and inactive.
func (s *DefaultCatalogService) ToggleActivation(ctx context.Context, actor models.Identity, serviceID string) (*models.Service, error) {
	svc, err := s.authorizeService(ctx, actor, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.State != models.ServiceStateApproved {
		return nil, utils.ErrForbidden("Only approved services can be activated")
	}
	next := models.ServiceStatusActive
	if svc.Status == models.ServiceStatusActive {
		next = models.ServiceStatusInactive
	}
	return s.update(ctx, svc, nil, bson.M{"status": next})
}

func (s *DefaultCatalogService) DeleteService(ctx context.Context, actor models.Identity, serviceID string) error {
	svc, err := s.authorizeService(ctx, actor, serviceID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, serviceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrNotFound("Service")
		}
		s.Logger.Error("DeleteService: delete failed", zap.String("serviceId", serviceID), zap.Error(err))
		return utils.ErrServer(err)
	}
	if s.Images != nil {
		s.Images.Discard(ctx, svc.Image)
	}
	s.Logger.Info("Service deleted", zap.String("serviceId", serviceID), zap.String("by", actor.UserID))
	return nil
}

// AdminReview records a moderation decision. Rejection also takes the
// listing offline.
func (s *DefaultCatalogService) AdminReview(ctx context.Context, adminID, serviceID string, req models.ServiceReviewRequest) (*models.Service, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	svc, err := s.getService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	set := bson.M{
		"state":       req.Decision,
		"reviewedAt":  time.Now().UTC(),
		"reviewNotes": strings.TrimSpace(req.Notes),
		"reviewedBy":  adminID,
	}
	if req.Decision == models.ServiceStateRejected {
		set["status"] = models.ServiceStatusInactive
	}
	updated, err := s.update(ctx, svc, req.Version, set)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Service reviewed", zap.String("serviceId", serviceID), zap.String("decision", req.Decision), zap.String("adminId", adminID))
	return updated, nil
}
