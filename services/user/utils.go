package user

import (
	"context"
	"errors"
	"fmt"

	"taskhive/database/repository"
	"taskhive/models"
	"taskhive/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.HashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *DefaultUserService) issue(u *models.User) (*models.AuthResponse, error) {
	token, err := s.Tokens.Generate(models.Identity{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		s.Logger.Error("issue: token generation failed", zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	u.PasswordHash = ""
	return &models.AuthResponse{User: u, Token: token}, nil
}

func (s *DefaultUserService) getUser(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.ErrNotFound("User")
	}
	if err != nil {
		s.Logger.Error("getUser: lookup failed", zap.String("userId", id), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	return u, nil
}
