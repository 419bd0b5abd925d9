package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parley-org/parley-backend/internal/handlers"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func newHealthRouter(db handlers.DBPinger, env string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	hh := handlers.NewHealthHandler(db, env)
	r := gin.New()
	r.GET("/", hh.Welcome)
	r.GET("/health", hh.Health)
	return r
}

func TestHealthHandler_Welcome(t *testing.T) {
	r := newHealthRouter(stubPinger{}, "test")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
}

func TestHealthHandler_DatabaseConnected(t *testing.T) {
	r := newHealthRouter(stubPinger{}, "test")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "connected", resp["database"])
	assert.Equal(t, "test", resp["environment"])
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	r := newHealthRouter(stubPinger{err: errors.New("dial refused")}, "test")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "disconnected", resp["database"])
}
