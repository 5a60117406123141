package user

import (
	"context"
	"errors"

	"taskhive/database/repository"
	"taskhive/models"
	"taskhive/utils"

	"go.uber.org/zap"
)

// Login never reveals whether the email or the password was wrong.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	u, err := s.Repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.ErrInvalidCredentials()
	}
	if err != nil {
		s.Logger.Error("Login: lookup failed", zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	if !checkPassword(u.PasswordHash, req.Password) {
		return nil, utils.ErrInvalidCredentials()
	}
	if u.Status == models.UserStatusSuspended {
		return nil, utils.ErrForbidden("Account is suspended")
	}
	return s.issue(u)
}

// Authenticate verifies the token and returns the caller's current identity.
func (s *DefaultUserService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, utils.ErrUnauthorized("Authorization token required")
	}
	claims, err := s.Tokens.Validate(token)
	if err != nil {
		return nil, utils.ErrUnauthorized("Invalid or expired token")
	}

	if s.Revocations != nil {
		revoked, err := s.Revocations.IsRevoked(ctx, token)
		if err != nil {
			s.Logger.Error("Authenticate: revocation check failed", zap.Error(err))
			return nil, utils.ErrServer(err)
		}
		if revoked {
			return nil, utils.ErrUnauthorized("Token has been revoked")
		}
	}

	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.ErrUnauthorized("User no longer exists")
	}
	if err != nil {
		s.Logger.Error("Authenticate: user lookup failed", zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	if u.Status == models.UserStatusSuspended {
		return nil, utils.ErrForbidden("Account is suspended")
	}

	return &models.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}

// Logout revokes the token for the rest of its lifetime.
func (s *DefaultUserService) Logout(ctx context.Context, token string) error {
	claims, err := s.Tokens.Validate(token)
	if err != nil {
		return utils.ErrUnauthorized("Invalid or expired token")
	}
	if s.Revocations == nil {
		return nil
	}
	if err := s.Revocations.Revoke(ctx, token, claims.Remaining()); err != nil {
		s.Logger.Error("Logout: revoke failed", zap.Error(err))
		return utils.ErrServer(err)
	}
	return nil
}
