package user

import (
	"context"
	"errors"

	"taskhive/database/repository"
	"taskhive/models"
	"taskhive/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Register creates an account with the given role and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest, role string) (*models.AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if role != models.RoleUser && role != models.RoleTasker {
		return nil, utils.ErrValidation("role must be user or tasker")
	}

	if _, err := s.Repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, utils.ErrConflict("A user with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.Logger.Error("Register: email lookup failed", zap.Error(err))
		return nil, utils.ErrServer(err)
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, utils.ErrServer(err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Status:       models.UserStatusActive,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// a concurrent registration can still win the unique index
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.ErrConflict("A user with this email already exists")
		}
		s.Logger.Error("Register: failed to create user", zap.Error(err))
		return nil, utils.ErrServer(err)
	}

	s.Logger.Info("User registered", zap.String("userId", u.ID), zap.String("role", role))
	return s.issue(u)
}
