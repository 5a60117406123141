package tasker

import (
	"context"
	"errors"
	"time"

	"taskhive/database/repository"
	"taskhive/models"
	"taskhive/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ListTaskers pages through profiles; an empty status lists all of them.
func (s *DefaultTaskerService) ListTaskers(ctx context.Context, search models.TaskerSearch) (models.Page[models.TaskerProfile], error) {
	items, total, err := s.Repo.List(ctx, search)
	if err != nil {
		s.Logger.Error("ListTaskers: query failed", zap.Error(err))
		return models.Page[models.TaskerProfile]{}, utils.ErrServer(err)
	}
	return models.NewPage(items, total, search.Page, search.Limit), nil
}

// ReviewTasker records an admin's approve or reject decision.
func (s *DefaultTaskerService) ReviewTasker(ctx context.Context, taskerID, status, notes, adminID string) (*models.Tasker, error) {
	if status != models.TaskerStatusApproved && status != models.TaskerStatusRejected {
		return nil, utils.ErrValidation("status must be approved or rejected")
	}
	if err := utils.ValidateStruct(models.TaskerReviewRequest{Notes: notes}); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	set := bson.M{
		"status":      status,
		"reviewNotes": notes,
		"reviewedBy":  adminID,
		"reviewedAt":  now,
	}
	if err := s.Repo.UpdateFields(ctx, taskerID, set); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound("Tasker")
		}
		s.Logger.Error("ReviewTasker: update failed", zap.String("taskerId", taskerID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}

	s.Logger.Info("Tasker reviewed", zap.String("taskerId", taskerID), zap.String("status", status), zap.String("adminId", adminID))
	t, err := s.Repo.GetByID(ctx, taskerID)
	if err != nil {
		return nil, utils.ErrServer(err)
	}
	return t, nil
}
