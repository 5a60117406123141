package user

import (
	"context"
	"time"

	userRepo "taskhive/database/repository/user"
	"taskhive/models"
	"taskhive/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService covers registration, login and self-service account actions.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest, role string) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
	Logout(ctx context.Context, token string) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, id, currentToken string, req models.ChangePasswordRequest) error
	UpdateFCMToken(ctx context.Context, id, token string) error
}

// TokenRevoker tracks logged-out tokens.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo        userRepo.UserRepository
	Tokens      *utils.TokenManager
	Revocations TokenRevoker
	Logger      *zap.Logger
	HashCost    int
}

func NewDefaultUserService(repo userRepo.UserRepository, tokens *utils.TokenManager, revocations TokenRevoker, logger *zap.Logger) *DefaultUserService {
	return &DefaultUserService{
		Repo:        repo,
		Tokens:      tokens,
		Revocations: revocations,
		Logger:      logger,
		HashCost:    bcrypt.DefaultCost,
	}
}
