package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parley-org/parley-backend/internal/handlers"
	"github.com/parley-org/parley-backend/internal/requestdata"
	"github.com/parley-org/parley-backend/internal/services"
	"github.com/parley-org/parley-backend/internal/types"
)

type stubChatService struct {
	sendFn    func(ctx context.Context, userID uuid.UUID, message string) (string, error)
	historyFn func(ctx context.Context, userID uuid.UUID) ([]*types.ChatMessage, error)
}

func (s *stubChatService) SendMessage(ctx context.Context, userID uuid.UUID, message string) (string, error) {
	return s.sendFn(ctx, userID, message)
}

func (s *stubChatService) GetHistory(ctx context.Context, userID uuid.UUID) ([]*types.ChatMessage, error) {
	return s.historyFn(ctx, userID)
}

// newChatRouter injects request data the way the auth middleware would.
func newChatRouter(svc services.ChatService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ch := handlers.NewChatHandler(svc)
	r := gin.New()
	if userID != uuid.Nil {
		r.Use(func(c *gin.Context) {
			ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
				UserID:   userID,
				Username: "alice",
			})
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
	r.POST("/api/chat", ch.SendMessage)
	r.GET("/api/chat/history", ch.GetHistory)
	return r
}

func TestChatHandler_SendMessage_OK(t *testing.T) {
	userID := uuid.New()
	svc := &stubChatService{
		sendFn: func(ctx context.Context, gotID uuid.UUID, message string) (string, error) {
			assert.Equal(t, userID, gotID)
			assert.Equal(t, "hello", message)
			return "Thanks for sharing that with me.", nil
		},
	}
	r := newChatRouter(svc, userID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Thanks for sharing that with me.", resp["response"])
}

func TestChatHandler_SendMessage_EmptyMessage(t *testing.T) {
	svc := &stubChatService{
		sendFn: func(ctx context.Context, userID uuid.UUID, message string) (string, error) {
			return "", services.ErrEmptyMessage
		},
	}
	r := newChatRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHandler_SendMessage_NoRequestData(t *testing.T) {
	svc := &stubChatService{}
	r := newChatRouter(svc, uuid.Nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestChatHandler_GetHistory_OK(t *testing.T) {
	userID := uuid.New()
	want := []*types.ChatMessage{
		{ID: uuid.New(), UserID: userID, Content: "hi", IsFromUser: true},
		{ID: uuid.New(), UserID: userID, Content: "Could you elaborate on that a bit?", IsFromUser: false},
	}
	svc := &stubChatService{
		historyFn: func(ctx context.Context, gotID uuid.UUID) ([]*types.ChatMessage, error) {
			assert.Equal(t, userID, gotID)
			return want, nil
		},
	}
	r := newChatRouter(svc, userID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []types.ChatMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "hi", resp[0].Content)
	assert.True(t, resp[0].IsFromUser)
	assert.False(t, resp[1].IsFromUser)
}

func TestChatHandler_GetHistory_ServiceError(t *testing.T) {
	svc := &stubChatService{
		historyFn: func(ctx context.Context, userID uuid.UUID) ([]*types.ChatMessage, error) {
			return nil, assertableInternalError{}
		},
	}
	r := newChatRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pg: connection refused")
}
