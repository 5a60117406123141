package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskhive/database/repository/memory"
	"taskhive/handlers"
	"taskhive/models"
	"taskhive/services/admin"
	"taskhive/services/booking"
	"taskhive/services/catalog"
	"taskhive/services/tasker"
	"taskhive/services/user"
	"taskhive/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	Data          json.RawMessage   `json:"data"`
	MissingFields map[string]bool   `json:"missingFields"`
	Fields        map[string]string `json:"fields"`
}

type testServer struct {
	router *gin.Engine
	store  *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	logger := zap.NewNop()

	users := user.NewDefaultUserService(store.Users(), utils.NewTokenManager("test-secret", time.Hour), memory.NewRevocationList(), logger)
	users.HashCost = bcrypt.MinCost
	taskers := tasker.NewDefaultTaskerService(store.Taskers(), store.Users(), nil, logger)
	catalogSvc := catalog.NewDefaultCatalogService(store.Services(), store.Taskers(), store.Bookings(), nil, logger)
	bookings := booking.NewDefaultBookingService(store.Bookings(), store.Services(), store.Taskers(), store.Users(), nil, nil, nil, "usd", logger)
	admins := admin.NewDefaultAdminService(store.Users(), store.Taskers(), store.Services(), store.Bookings(), taskers, logger)

	hb := &handlers.HandlerBundle{
		Auth:    users,
		User:    handlers.NewUserHandler(users),
		Tasker:  handlers.NewTaskerHandler(taskers),
		Service: handlers.NewServiceHandler(catalogSvc),
		Booking: handlers.NewBookingHandler(bookings),
		Admin:   handlers.NewAdminHandler(admins),
		Storage: handlers.NewStorageHandler(nil),
	}
	r := gin.New()
	RegisterRoutes(r, hb, []string{"*"})
	return &testServer{router: r, store: store}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func (s *testServer) register(t *testing.T, path, name, email string) models.AuthResponse {
	t.Helper()
	w, env := s.do(t, http.MethodPost, path, "", gin.H{"name": name, "email": email, "password": "secret123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var auth models.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	return auth
}

func (s *testServer) admin(t *testing.T) string {
	t.Helper()
	auth := s.register(t, "/api/users", "Ada Admin", "ada@example.com")
	require.NoError(t, s.store.Users().UpdateFields(context.Background(), auth.User.ID, bson.M{"role": models.RoleAdmin}))
	w, env := s.do(t, http.MethodPost, "/api/users/login", "", gin.H{"email": "ada@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	var login models.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &login))
	return login.Token
}

func TestAnonymousBookingMissingServiceID(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodPost, "/api/bookings", "", gin.H{
		"userId":             "3f2c1d9e-8a41-4f7b-9c1e-2b6f0d4a7e55",
		"customerPhone":      "555-0100",
		"serviceDescription": "Leaky tap",
		"serviceLocation":    "7 Pine Rd",
		"preferredDate":      time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, map[string]bool{"serviceId": true}, env.MissingFields)
}

func TestUnknownFieldsAreRejected(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodPost, "/api/users", "", gin.H{"name": "Eve", "email": "eve@example.com", "password": "secret123", "role": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestLoginFailureIsUndifferentiated(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "/api/users", "Uma User", "uma@example.com")

	w1, e1 := s.do(t, http.MethodPost, "/api/users/login", "", gin.H{"email": "uma@example.com", "password": "wrong-pass"})
	w2, e2 := s.do(t, http.MethodPost, "/api/users/login", "", gin.H{"email": "nobody@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, w1.Code, w2.Code)
	assert.Equal(t, e1.Message, e2.Message)
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "/api/users", "Uma User", "uma@example.com")

	w, _ := s.do(t, http.MethodGet, "/api/users/me", auth.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/users/logout", auth.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/users/me", auth.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGates(t *testing.T) {
	s := newTestServer(t)
	customer := s.register(t, "/api/users", "Uma User", "uma@example.com")

	w, _ := s.do(t, http.MethodGet, "/api/taskers/profile/check", customer.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/admin/dashboard", customer.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/admin/dashboard", s.admin(t), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMarketplaceFlow(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.admin(t)
	taskerAuth := s.register(t, "/api/users/tasker", "Tom Tasker", "tom@example.com")
	customer := s.register(t, "/api/users", "Carla Customer", "carla@example.com")

	w, env := s.do(t, http.MethodGet, "/api/taskers/profile/check", taskerAuth.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"exists":false}`, string(env.Data))

	w, env = s.do(t, http.MethodPost, "/api/taskers/profile", taskerAuth.Token, gin.H{
		"addressLine1": "1 Main St", "city": "Denver", "postalCode": "80202", "country": "US",
		"category": "Cleaning", "experience": "4 years", "hourlyRate": 35, "bio": "Careful cleaner",
		"skills": "windows, ovens ,",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var profile models.TaskerProfile
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, []string{"windows", "ovens"}, profile.Skills)

	w, env = s.do(t, http.MethodPost, "/api/services/tasker/"+profile.ID, taskerAuth.Token, gin.H{
		"title": "Oven clean", "category": "Cleaning", "description": "Degrease and polish",
		"price": "80", "image": "https://example.com/oven.jpg", "status": "active", "state": "approved",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var svc models.Service
	require.NoError(t, json.Unmarshal(env.Data, &svc))
	assert.Equal(t, models.ServiceStatePending, svc.State)

	w, _ = s.do(t, http.MethodPost, "/api/services/tasker/"+profile.ID, customer.Token, gin.H{})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPut, "/api/services/admin/"+svc.ID+"/review", adminToken, gin.H{"decision": "approved", "notes": "ok"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w, _ = s.do(t, http.MethodPatch, "/api/services/"+svc.ID, taskerAuth.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = s.do(t, http.MethodGet, "/api/services/public?search=denver", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listings []models.ServiceListing
	require.NoError(t, json.Unmarshal(env.Data, &listings))
	require.Len(t, listings, 1)
	assert.Equal(t, svc.ID, listings[0].ID)

	bookingBody := gin.H{
		"serviceId": svc.ID, "customerPhone": "555-0199", "serviceDescription": "Very greasy oven",
		"serviceLocation": "9 Elm St", "preferredDate": time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
	}
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(mustJSON(t, bookingBody)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+customer.Token)
	req.Header.Set("Idempotency-Key", "order-1")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	var view models.BookingView
	require.NoError(t, json.Unmarshal(created.Data, &view))
	assert.Equal(t, customer.User.ID, view.UserID)
	require.NotNil(t, view.Service)
	assert.Equal(t, "Oven clean", view.Service.Title)

	req = httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(mustJSON(t, bookingBody)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+customer.Token)
	req.Header.Set("Idempotency-Key", "order-1")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	w, _ = s.do(t, http.MethodPut, "/api/bookings/"+view.ID+"/status", customer.Token, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPut, "/api/bookings/"+view.ID+"/status", taskerAuth.Token, gin.H{"status": "completed", "actualCost": 90})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = s.do(t, http.MethodPost, "/api/bookings/"+view.ID+"/feedback", customer.Token, gin.H{"rating": 5, "feedback": "Sparkling"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"bookingId":"`+view.ID+`","rating":5,"feedback":"Sparkling"}`, string(env.Data))

	w, _ = s.do(t, http.MethodPost, "/api/bookings/"+view.ID+"/feedback", customer.Token, gin.H{"rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/bookings/customer/carla@example.com", customer.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page models.BookingPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.EqualValues(t, 1, page.Total)
	assert.EqualValues(t, 1, page.StatusCounts[models.BookingCompleted])

	w, env = s.do(t, http.MethodGet, "/api/services/profile/"+svc.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing models.ServiceListing
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Equal(t, 5.0, listing.Rating)
	assert.Equal(t, 1, listing.JobsCompleted)

	w, env = s.do(t, http.MethodGet, "/api/bookings/admin/statistics", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.BookingStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 90.0, stats.TotalRevenue)
}

func TestUploadWithoutMediaHost(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "/api/users", "Uma User", "uma@example.com")
	w, _ := s.do(t, http.MethodPost, "/api/uploads/image", auth.Token, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthWithoutMonitor(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
