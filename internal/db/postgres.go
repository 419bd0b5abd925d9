package db

import (
  "context"
  "fmt"
  "time"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/parley-org/parley-backend/internal/logger"
  "github.com/parley-org/parley-backend/internal/types"
  "github.com/parley-org/parley-backend/internal/utils"
)

const connectTimeout = 5 * time.Second

type PostgresService struct {
  db *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  //1) Get and Set Environment Variables
  log.Info("Attempting to load environment variables for Postgres now...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "parley", log)

  //2) Construct DSN From Environment Variables
  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&connect_timeout=%d",
    postgresUser, postgresPassword, postgresHost, postgresPort, postgresName,
    int(connectTimeout.Seconds()))

  //3) Attempt DB Connection
  log.Info("Attempting to connect to Postgres DB now...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
    TranslateError: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres DB", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres DB: %w", err)
  }

  //4) Verify the connection within the dial budget. There is no degraded
  //   mode without the store, so the caller treats failure as fatal.
  sqlDB, err := db.DB()
  if err != nil {
    return nil, fmt.Errorf("failed to access underlying sql.DB: %w", err)
  }
  ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
  defer cancel()
  if err := sqlDB.PingContext(ctx); err != nil {
    log.Error("Postgres ping failed", "error", err)
    return nil, fmt.Errorf("postgres ping failed: %w", err)
  }
  log.Info("Successfully Connected to Postgres DB :)")

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}

// Ping reports whether the store is currently reachable.
func (s *PostgresService) Ping(ctx context.Context) error {
  sqlDB, err := s.db.DB()
  if err != nil {
    return err
  }
  return sqlDB.PingContext(ctx)
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Starting AutoMigrateAll for all GORM models now...")

  err := s.db.AutoMigrate(
    &types.User{},
    &types.ChatMessage{},
  )
  if err != nil {
    s.log.Error("AutoMigrateAll failed for Base Tables :(", "error", err)
    return err
  }
  s.log.Info("AutoMigrateAll completed successfully for Base Tables :)")

  s.log.Info("Configuring Foreign Key Relationships for Base Tables now...")
  // -- ChatMessage.user_id => user.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "chat_message"
      DROP CONSTRAINT IF EXISTS "fk_chat_message_user_id";
  `).Error; err != nil {
    return fmt.Errorf("failed to drop fk_chat_message_user_id: %w", err)
  }
  if err := s.db.Exec(`
      ALTER TABLE "chat_message"
      ADD CONSTRAINT "fk_chat_message_user_id"
      FOREIGN KEY ("user_id")
      REFERENCES "user"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_chat_message_user_id: %w", err)
  }
  s.log.Info("Foreign Key Relationships configured :)")
  return nil
}
