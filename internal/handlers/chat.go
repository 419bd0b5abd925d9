package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/parley-org/parley-backend/internal/requestdata"
  "github.com/parley-org/parley-backend/internal/services"
)

type ChatHandler struct {
  chatService     services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
  return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) SendMessage(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    c.JSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
    return
  }
  var req struct {
    Message         string          `json:"message"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  reply, err := ch.chatService.SendMessage(c.Request.Context(), rd.UserID, req.Message)
  if err != nil {
    switch {
    case errors.Is(err, services.ErrEmptyMessage):
      c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"error": services.ErrInternal.Error()})
    }
    return
  }
  c.JSON(http.StatusOK, gin.H{"response": reply})
}

func (ch *ChatHandler) GetHistory(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    c.JSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
    return
  }
  msgs, err := ch.chatService.GetHistory(c.Request.Context(), rd.UserID)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": services.ErrInternal.Error()})
    return
  }
  c.JSON(http.StatusOK, msgs)
}
