package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"comicdash/internal/handler"
	"comicdash/internal/models"
	"comicdash/internal/repository"
	"comicdash/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Profile(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) SetSubscribed(ctx context.Context, id string, subscribed bool) (*models.User, error) {
	args := m.Called(ctx, id, subscribed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupUserRouter(svc *MockUserService, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewUserHandler(svc)

	rg := r.Group("/api/v1")
	rg.Use(mockAuthMiddleware(role))
	users := rg.Group("/users")
	h.RegisterRoutes(rg, users)
	return r
}

func TestUserProfile(t *testing.T) {
	svc := new(MockUserService)
	r := setupUserRouter(svc, "user")

	svc.On("Profile", mock.Anything).Return(&models.User{
		ID:        "u1",
		Name:      "Ann",
		Email:     "ann@example.com",
		Role:      "admin",
		CreatedAt: time.Now(),
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ann@example.com", body["email"])
}

func TestUserProfileNoSession(t *testing.T) {
	svc := new(MockUserService)
	r := setupUserRouter(svc, "user")

	svc.On("Profile", mock.Anything).Return(nil, service.ErrNoProfile)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserListRequiresAdmin(t *testing.T) {
	svc := new(MockUserService)
	r := setupUserRouter(svc, "user")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/users", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "List", mock.Anything)
}

func TestUserListAsAdmin(t *testing.T) {
	svc := new(MockUserService)
	r := setupUserRouter(svc, "admin")

	svc.On("List", mock.Anything).Return([]models.User{
		{ID: "u1", Email: "ann@example.com", Role: "admin"},
		{ID: "u2", Email: "bob@example.com", Role: "user", Subscribed: true},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/users", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
}

func TestUpdateSubscription(t *testing.T) {
	svc := new(MockUserService)
	r := setupUserRouter(svc, "admin")

	svc.On("SetSubscribed", mock.Anything, "u2", true).
		Return(&models.User{ID: "u2", Subscribed: true}, nil)

	payload := bytes.NewBufferString(`{"subscribed":true}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/users/u2/subscription", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertCalled(t, "SetSubscribed", mock.Anything, "u2", true)
}

func TestUpdateSubscriptionMissingField(t *testing.T) {
	svc := new(MockUserService)
	r := setupUserRouter(svc, "admin")

	payload := bytes.NewBufferString(`{}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/users/u2/subscription", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "SetSubscribed", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateSubscriptionUnknownUser(t *testing.T) {
	svc := new(MockUserService)
	r := setupUserRouter(svc, "admin")

	svc.On("SetSubscribed", mock.Anything, "ghost", false).
		Return(nil, repository.ErrNotFound)

	payload := bytes.NewBufferString(`{"subscribed":false}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/users/ghost/subscription", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserDeleteRequiresAdmin(t *testing.T) {
	svc := new(MockUserService)
	r := setupUserRouter(svc, "user")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/users/u2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
