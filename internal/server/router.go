package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/parley-org/parley-backend/internal/handlers"
  "github.com/parley-org/parley-backend/internal/middleware"
)

type RouterConfig struct {
  HealthHandler         *handlers.HealthHandler
  AuthHandler           *handlers.AuthHandler
  AuthMiddleware        *middleware.AuthMiddleware
  ChatHandler           *handlers.ChatHandler
  WsHandler             gin.HandlerFunc
  AllowedOrigins        []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  //-----------------------------------------
  // Cors Setup
  //-----------------------------------------
  origins := cfg.AllowedOrigins
  if len(origins) == 0 {
    origins = []string{"http://localhost:3000"}
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     origins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  //-----------------------------------------
  // Health Routes
  //-----------------------------------------
  router.GET("/", cfg.HealthHandler.Welcome)
  router.GET("/health", cfg.HealthHandler.Health)

  //-----------------------------------------
  // Broadcast channel (no auth by contract)
  //-----------------------------------------
  router.GET("/ws", cfg.WsHandler)

  //-----------------------------------------
  // Public Routes
  //-----------------------------------------
  api := router.Group("/api")
  auth := api.Group("/auth")
  {
    auth.POST("/register", cfg.AuthHandler.Register)
    auth.POST("/login", cfg.AuthHandler.Login)
  }

  //------------------------------------------
  // Protected Routes
  //------------------------------------------
  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  protected.POST("/chat", cfg.ChatHandler.SendMessage)
  protected.GET("/chat/history", cfg.ChatHandler.GetHistory)

  return router
}
