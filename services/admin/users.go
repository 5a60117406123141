package admin

import (
	"context"
	"errors"

	"taskhive/database/repository"
	"taskhive/models"
	"taskhive/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultAdminService) ListUsers(ctx context.Context, search models.UserSearch) (models.Page[models.User], error) {
	items, total, err := s.Users.List(ctx, search)
	if err != nil {
		s.Logger.Error("ListUsers: query failed", zap.Error(err))
		return models.Page[models.User]{}, utils.ErrServer(err)
	}
	return models.NewPage(items, total, search.Page, search.Limit), nil
}

func (s *DefaultAdminService) SuspendUser(ctx context.Context, adminID, userID string) (*models.User, error) {
	return s.setUserStatus(ctx, adminID, userID, models.UserStatusSuspended)
}

func (s *DefaultAdminService) ActivateUser(ctx context.Context, adminID, userID string) (*models.User, error) {
	return s.setUserStatus(ctx, adminID, userID, models.UserStatusActive)
}

func (s *DefaultAdminService) setUserStatus(ctx context.Context, adminID, userID, status string) (*models.User, error) {
	if adminID == userID {
		return nil, utils.ErrForbidden("You cannot change your own account status")
	}
	if err := s.Users.UpdateFields(ctx, userID, bson.M{"status": status}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound("User")
		}
		s.Logger.Error("setUserStatus: update failed", zap.String("userId", userID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	s.Logger.Info("User status changed", zap.String("userId", userID), zap.String("status", status), zap.String("adminId", adminID))

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrServer(err)
	}
	return u, nil
}

// DeleteUser removes the account and any tasker profile attached to it.
// Bookings and services are left in place.
func (s *DefaultAdminService) DeleteUser(ctx context.Context, adminID, userID string) error {
	if adminID == userID {
		return utils.ErrForbidden("You cannot delete your own account")
	}
	if err := s.Users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrNotFound("User")
		}
		s.Logger.Error("DeleteUser: delete failed", zap.String("userId", userID), zap.Error(err))
		return utils.ErrServer(err)
	}
	if err := s.Taskers.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.Logger.Error("DeleteUser: tasker profile cleanup failed", zap.String("userId", userID), zap.Error(err))
		return utils.ErrServer(err)
	}
	s.Logger.Info("User deleted", zap.String("userId", userID), zap.String("adminId", adminID))
	return nil
}
