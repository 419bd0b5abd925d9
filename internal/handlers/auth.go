package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/parley-org/parley-backend/internal/services"
)

type AuthHandler struct {
  authService     services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req struct {
    Username        string          `json:"username"`
    Password        string          `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  token, user, err := ah.authService.Register(c.Request.Context(), req.Username, req.Password)
  if err != nil {
    switch {
    case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrUsernameTaken):
      c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"error": services.ErrInternal.Error()})
    }
    return
  }
  c.JSON(http.StatusCreated, gin.H{"token": token, "userId": user.ID, "username": user.Username})
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Username        string          `json:"username"`
    Password        string          `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  token, user, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
  if err != nil {
    switch {
    case errors.Is(err, services.ErrMissingFields):
      c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    case errors.Is(err, services.ErrInvalidCredentials):
      c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"error": services.ErrInternal.Error()})
    }
    return
  }
  c.JSON(http.StatusOK, gin.H{"token": token, "userId": user.ID, "username": user.Username})
}
