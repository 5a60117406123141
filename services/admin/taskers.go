package admin

import (
	"context"

	"taskhive/models"
)

func (s *DefaultAdminService) ListTaskers(ctx context.Context, search models.TaskerSearch) (models.Page[models.TaskerProfile], error) {
	return s.Profiles.ListTaskers(ctx, search)
}

// ApprovalQueue lists taskers still waiting for review.
func (s *DefaultAdminService) ApprovalQueue(ctx context.Context, search models.TaskerSearch) (models.Page[models.TaskerProfile], error) {
	search.Status = models.TaskerStatusPending
	return s.Profiles.ListTaskers(ctx, search)
}

func (s *DefaultAdminService) ApproveTasker(ctx context.Context, adminID, taskerID, notes string) (*models.Tasker, error) {
	return s.Profiles.ReviewTasker(ctx, taskerID, models.TaskerStatusApproved, notes, adminID)
}

func (s *DefaultAdminService) RejectTasker(ctx context.Context, adminID, taskerID, notes string) (*models.Tasker, error) {
	return s.Profiles.ReviewTasker(ctx, taskerID, models.TaskerStatusRejected, notes, adminID)
}
