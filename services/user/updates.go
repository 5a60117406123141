package user

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

func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

// UpdateProfile changes name and/or email.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		existing, err := s.Repo.GetByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != id:
			return nil, utils.ErrConflict("A user with this email already exists")
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			s.Logger.Error("UpdateProfile: email lookup failed", zap.Error(err))
			return nil, utils.ErrServer(err)
		}
		set["email"] = email
	}
	if len(set) == 0 {
		return nil, utils.ErrValidation("No fields to update")
	}

	if err := s.Repo.UpdateFields(ctx, id, set); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, utils.ErrNotFound("User")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, utils.ErrConflict("A user with this email already exists")
		}
		s.Logger.Error("UpdateProfile: update failed", zap.String("userId", id), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	return s.GetUserByID(ctx, id)
}

// ChangePassword verifies the current password, stores the new hash and
// revokes the token used for the request.
func (s *DefaultUserService) ChangePassword(ctx context.Context, id, currentToken string, req models.ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}
	u, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}
	if !checkPassword(u.PasswordHash, req.CurrentPassword) {
		return utils.ErrInvalidCredentials()
	}

	hash, err := s.hashPassword(req.NewPassword)
	if err != nil {
		return utils.ErrServer(err)
	}
	if err := s.Repo.UpdateFields(ctx, id, bson.M{"passwordHash": hash}); err != nil {
		s.Logger.Error("ChangePassword: update failed", zap.String("userId", id), zap.Error(err))
		return utils.ErrServer(err)
	}

	if currentToken != "" {
		if err := s.Logout(ctx, currentToken); err != nil {
			s.Logger.Warn("ChangePassword: token revoke failed", zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, id, token string) error {
	if err := utils.ValidateStruct(models.FCMTokenRequest{Token: token}); err != nil {
		return err
	}
	if err := s.Repo.UpdateFields(ctx, id, bson.M{"fcmToken": token}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrNotFound("User")
		}
		s.Logger.Error("UpdateFCMToken: update failed", zap.String("userId", id), zap.Error(err))
		return utils.ErrServer(err)
	}
	return nil
}
