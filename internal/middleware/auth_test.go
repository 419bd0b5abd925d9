package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parley-org/parley-backend/internal/logger"
	"github.com/parley-org/parley-backend/internal/middleware"
	"github.com/parley-org/parley-backend/internal/repos/mocks"
	"github.com/parley-org/parley-backend/internal/requestdata"
	"github.com/parley-org/parley-backend/internal/services"
	"github.com/parley-org/parley-backend/internal/types"
)

func mintToken(t *testing.T, svc services.AuthService, userRepo *mocks.UserRepo, username string) string {
	t.Helper()
	userRepo.On("UsernameExists", mock.Anything, mock.Anything, username).
		Return(false, nil).Once()
	stored := &types.User{ID: uuid.New(), Username: username}
	userRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return([]*types.User{stored}, nil).Once()
	token, _, err := svc.Register(context.Background(), username, "password")
	require.NoError(t, err)
	return token
}

func newProbeRouter(t *testing.T, svc services.AuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	am := middleware.NewAuthMiddleware(logger.NewNop(), svc)
	r := gin.New()
	r.GET("/probe", am.RequireAuth(), func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"username": rd.Username})
	})
	return r
}

func TestRequireAuth_MissingToken(t *testing.T) {
	svc, err := services.NewAuthService(logger.NewNop(), new(mocks.UserRepo), "test-secret", time.Hour)
	require.NoError(t, err)
	r := newProbeRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code, "no credential presented means unauthenticated")
}

func TestRequireAuth_MalformedToken(t *testing.T) {
	svc, err := services.NewAuthService(logger.NewNop(), new(mocks.UserRepo), "test-secret", time.Hour)
	require.NoError(t, err)
	r := newProbeRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code, "a presented but invalid credential means unauthorized")
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	userRepo := new(mocks.UserRepo)
	expiredSvc, err := services.NewAuthService(logger.NewNop(), userRepo, "test-secret", -time.Minute)
	require.NoError(t, err)
	token := mintToken(t, expiredSvc, userRepo, "stale")

	svc, err := services.NewAuthService(logger.NewNop(), new(mocks.UserRepo), "test-secret", time.Hour)
	require.NoError(t, err)
	r := newProbeRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	userRepo := new(mocks.UserRepo)
	svc, err := services.NewAuthService(logger.NewNop(), userRepo, "test-secret", time.Hour)
	require.NoError(t, err)
	token := mintToken(t, svc, userRepo, "alice")

	r := newProbeRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}
