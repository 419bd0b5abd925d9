package main

import (
  "fmt"
  "os"
  "strings"
  "time"

  "github.com/joho/godotenv"

  "github.com/parley-org/parley-backend/internal/db"
  "github.com/parley-org/parley-backend/internal/handlers"
  "github.com/parley-org/parley-backend/internal/logger"
  "github.com/parley-org/parley-backend/internal/middleware"
  "github.com/parley-org/parley-backend/internal/repos"
  "github.com/parley-org/parley-backend/internal/server"
  "github.com/parley-org/parley-backend/internal/services"
  "github.com/parley-org/parley-backend/internal/socket"
  "github.com/parley-org/parley-backend/internal/utils"
)

func main() {
  // .env is optional; real deployments inject the environment directly.
  _ = godotenv.Load()

  // Logger Setup
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Environment Variables
  log.Info("Attempting to load environment variables for Main now...")
  jwtSecretKey, err := utils.RequireEnv("JWT_SECRET", log)
  if err != nil {
    // Refusing to start beats silently signing tokens with a known default.
    log.Error("JWT_SECRET is required, refusing to start", "error", err)
    os.Exit(1)
  }
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  appEnv := utils.GetEnv("APP_ENV", "development", log)
  corsOrigins := utils.GetEnv("CORS_ORIGINS", "", log)
  redisAddress := utils.GetEnv("REDIS_ADDRESS", "", log)
  redisPassword := utils.GetEnv("REDIS_PASSWORD", "", log)
  log.Info("Environment variables loaded for Main :)")

  // Postgres Setup
  log.Info("Setting Up Postgres from Main now...")
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("DB init failed, refusing to start", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed, refusing to start", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()
  log.Info("Postgres Setup From Main Successful :)")

  // Repositories Setup
  log.Info("Setting Up Repositories from Main now...")
  userRepo := repos.NewUserRepo(thePG, log)
  chatMessageRepo := repos.NewChatMessageRepo(thePG, log)
  log.Info("Repositories Set Up From Main Successful :)")

  // Websocket Setup
  log.Info("Setting Up Websocket Hub From Main Now :)")
  wsHub := socket.NewHub(log)
  var redisBridge *socket.RedisBridge
  if redisAddress != "" {
    redisChanName := "parley_hub_broadcast"
    redisBridge, err = socket.NewRedisBridge(log, redisAddress, redisPassword, redisChanName)
    if err != nil {
      log.Warn("Failed to init redis bridge, broadcast stays single-node", "error", err)
    } else {
      if err := redisBridge.StartSubscriber(wsHub); err != nil {
        log.Warn("Failed to subscribe to Redis pub/sub", "error", err)
      } else {
        wsHub.SetRedisBridge(redisBridge)
        log.Info("Redis bridge is active!")
      }
    }
  }

  // Services Setup
  log.Info("Setting up Services from Main now...")
  authService, err := services.NewAuthService(log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
  if err != nil {
    log.Error("Fatal error: Cannot init AuthService", "error", err)
    os.Exit(1)
  }
  responder := services.NewCannedResponder(log)
  chatService := services.NewChatService(log, chatMessageRepo, responder)
  log.Info("Services Set Up From Main Successful :)")

  // Handler Setup
  log.Info("Setting Up Handlers from Main now...")
  healthHandler := handlers.NewHealthHandler(postgresService, appEnv)
  authHandler := handlers.NewAuthHandler(authService)
  chatHandler := handlers.NewChatHandler(chatService)
  wsHandler := handlers.WsHandler(wsHub, log)
  log.Info("Handlers Set Up From Main Successful :)")

  // MiddleWare Setup
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router Setup
  var allowedOrigins []string
  if corsOrigins != "" {
    for _, origin := range strings.Split(corsOrigins, ",") {
      if o := strings.TrimSpace(origin); o != "" {
        allowedOrigins = append(allowedOrigins, o)
      }
    }
  }
  router := server.NewRouter(server.RouterConfig{
    HealthHandler:  healthHandler,
    AuthHandler:    authHandler,
    AuthMiddleware: authMiddleware,
    ChatHandler:    chatHandler,
    WsHandler:      wsHandler,
    AllowedOrigins: allowedOrigins,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }

  // On Shutdown
  wsHub.Shutdown()
  if redisBridge != nil {
    redisBridge.Stop()
  }
}
