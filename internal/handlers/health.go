package handlers

import (
  "context"
  "net/http"
  "time"

  "github.com/gin-gonic/gin"
)

// DBPinger is the slice of the persistence service the health check needs.
type DBPinger interface {
  Ping(ctx context.Context) error
}

type HealthHandler struct {
  db              DBPinger
  environment     string
}

func NewHealthHandler(db DBPinger, environment string) *HealthHandler {
  return &HealthHandler{db: db, environment: environment}
}

func (hh *HealthHandler) Welcome(c *gin.Context) {
  c.String(http.StatusOK, "Welcome to the Parley chat API")
}

func (hh *HealthHandler) Health(c *gin.Context) {
  database := "connected"
  ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
  defer cancel()
  if hh.db == nil || hh.db.Ping(ctx) != nil {
    database = "disconnected"
  }
  c.JSON(http.StatusOK, gin.H{
    "status": "ok",
    "database": database,
    "environment": hh.environment,
  })
}
