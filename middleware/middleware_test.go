package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskhive/models"
	"taskhive/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAuth struct{}

func (fakeAuth) Authenticate(_ context.Context, token string) (*models.Identity, error) {
	switch token {
	case "admin-token":
		return &models.Identity{UserID: "a1", Role: models.RoleAdmin}, nil
	case "user-token":
		return &models.Identity{UserID: "u1", Role: models.RoleUser}, nil
	}
	return nil, utils.ErrUnauthorized("Invalid or expired token")
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "userId": id.UserID})
	})
	r.GET("/", handlers...)
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddlewareRequired(t *testing.T) {
	r := newRouter(JWTAuthMiddleware(fakeAuth{}, false))

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "forged").Code)

	w := get(r, "user-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"u1"`)
}

func TestJWTAuthMiddlewareOptional(t *testing.T) {
	r := newRouter(JWTAuthMiddleware(fakeAuth{}, true))

	w := get(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	w = get(r, "forged")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	w = get(r, "user-token")
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestRequireRoles(t *testing.T) {
	r := newRouter(JWTAuthMiddleware(fakeAuth{}, false), RequireRoles(models.RoleAdmin))

	assert.Equal(t, http.StatusForbidden, get(r, "user-token").Code)
	assert.Equal(t, http.StatusOK, get(r, "admin-token").Code)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2, zap.NewNop())
	r := newRouter(limiter.Middleware())

	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "").Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := newRouter(RequestLogger(zap.NewNop()))

	w := get(r, "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
