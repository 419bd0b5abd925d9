package utils

import (
  "context"
  "fmt"

  "golang.org/x/crypto/bcrypt"

  "github.com/parley-org/parley-backend/internal/logger"
  "github.com/parley-org/parley-backend/internal/normalization"
  "github.com/parley-org/parley-backend/internal/types"
)

// NormalizeUserFields cleans the user-supplied credential fields in place.
// Usernames are lowercased so uniqueness is case-insensitive.
func NormalizeUserFields(ctx context.Context, user *types.User) {
  user.Username = normalization.ParseUsername(user.Username)
  user.Password = normalization.ParseInputString(user.Password)
}

// HashPassword replaces user.Password with its bcrypt hash.
func HashPassword(ctx context.Context, log *logger.Logger, user *types.User) error {
  hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    log.Warn("Failure to hash password for user. Returning error", "error", err)
    return fmt.Errorf("Failed to hash password for user.")
  }
  user.Password = string(hashedPassword)
  return nil
}
