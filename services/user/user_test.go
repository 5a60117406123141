package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"taskhive/database/repository/memory"
	"taskhive/models"
	"taskhive/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (m *memRevoker) Revoke(_ context.Context, token string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[token] = true
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[token], nil
}

func newTestService(t *testing.T) (*DefaultUserService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewDefaultUserService(store.Users(), utils.NewTokenManager("test-secret", 7*24*time.Hour), &memRevoker{revoked: map[string]bool{}}, zap.NewNop())
	svc.HashCost = bcrypt.MinCost
	return svc, store
}

func register(t *testing.T, svc *DefaultUserService, email, role string) *models.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), models.RegisterRequest{Name: "Test User", Email: email, Password: "secret123"}, role)
	require.NoError(t, err)
	return resp
}

func TestRegisterIssuesTokenAndHidesHash(t *testing.T) {
	svc, store := newTestService(t)
	resp := register(t, svc, "jane@example.com", models.RoleTasker)

	assert.NotEmpty(t, resp.Token)
	assert.Empty(t, resp.User.PasswordHash)
	assert.Equal(t, models.RoleTasker, resp.User.Role)
	assert.Equal(t, models.UserStatusActive, resp.User.Status)

	stored, err := store.Users().GetByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))

	claims, err := svc.Tokens.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{UserID: resp.User.ID, Email: "jane@example.com", Role: models.RoleTasker}, claims.Identity())
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "jane@example.com", models.RoleUser)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "Other", Email: "JANE@example.com", Password: "secret123"}, models.RoleUser)
	assert.True(t, utils.IsKind(err, utils.KindConflict))
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "J", Email: "not-an-email", Password: "1"}, models.RoleUser)
	require.True(t, utils.IsKind(err, utils.KindValidation))

	appErr := utils.AsAppError(err)
	fields := appErr.Details["fields"].(map[string]string)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")

	_, err = svc.Register(context.Background(), models.RegisterRequest{Name: "Admin", Email: "a@b.test", Password: "secret123"}, models.RoleAdmin)
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestLoginIsUndifferentiated(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "jane@example.com", models.RoleUser)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	wrongPassword := utils.AsAppError(err)
	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	wrongEmail := utils.AsAppError(err)

	assert.Equal(t, utils.KindInvalidCredentials, wrongPassword.Kind)
	assert.Equal(t, wrongPassword.Message, wrongEmail.Message)
	assert.Equal(t, wrongPassword.Status, wrongEmail.Status)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestSuspendedUserCannotLoginOrAuthenticate(t *testing.T) {
	svc, store := newTestService(t)
	resp := register(t, svc, "jane@example.com", models.RoleUser)
	require.NoError(t, store.Users().UpdateFields(context.Background(), resp.User.ID, map[string]interface{}{"status": models.UserStatusSuspended}))

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "jane@example.com", Password: "secret123"})
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	_, err = svc.Authenticate(context.Background(), resp.Token)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))
}

func TestAuthenticateAndLogout(t *testing.T) {
	svc, _ := newTestService(t)
	resp := register(t, svc, "jane@example.com", models.RoleUser)
	ctx := context.Background()

	id, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id.UserID)

	_, err = svc.Authenticate(ctx, "")
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))
	_, err = svc.Authenticate(ctx, "garbage")
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))

	require.NoError(t, svc.Logout(ctx, resp.Token))
	_, err = svc.Authenticate(ctx, resp.Token)
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)
	jane := register(t, svc, "jane@example.com", models.RoleUser)
	register(t, svc, "john@example.com", models.RoleUser)
	ctx := context.Background()

	name := "Jane Doe"
	u, err := svc.UpdateProfile(ctx, jane.User.ID, models.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", u.Name)

	taken := "john@example.com"
	_, err = svc.UpdateProfile(ctx, jane.User.ID, models.UpdateProfileRequest{Email: &taken})
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	_, err = svc.UpdateProfile(ctx, jane.User.ID, models.UpdateProfileRequest{})
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestChangePasswordRevokesToken(t *testing.T) {
	svc, _ := newTestService(t)
	resp := register(t, svc, "jane@example.com", models.RoleUser)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, resp.User.ID, resp.Token, models.ChangePasswordRequest{CurrentPassword: "bad", NewPassword: "newsecret"})
	assert.True(t, utils.IsKind(err, utils.KindInvalidCredentials))

	require.NoError(t, svc.ChangePassword(ctx, resp.User.ID, resp.Token, models.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "newsecret"}))

	_, err = svc.Authenticate(ctx, resp.Token)
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))

	_, err = svc.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "newsecret"})
	assert.NoError(t, err)
}
