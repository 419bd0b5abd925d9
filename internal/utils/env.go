package utils

import (
  "fmt"
  "os"
  "strconv"

  "github.com/parley-org/parley-backend/internal/logger"
)

func GetEnv(key, defaultVal string, log *logger.Logger) string {
  if log != nil {
    log = log.With("env_var", key)
  }
  val, ok := os.LookupEnv(key)
  if !ok {
    if log != nil {
      log.Debug("Environment variable not found, using default value", "defaultVal", defaultVal)
    }
    return defaultVal
  }
  if log != nil {
    log.Debug("Environment variable found", "value", val)
  }
  return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
  if log != nil {
    log = log.With("env_var", key)
  }
  valStr, ok := os.LookupEnv(key)
  if !ok {
    if log != nil {
      log.Debug("Environment variable not found, using default int", "defaultVal", defaultVal)
    }
    return defaultVal
  }
  i, err := strconv.Atoi(valStr)
  if err != nil {
    if log != nil {
      log.Debug("Environment variable could not be parsed as int, using default", "providedVal", valStr, "defaultVal", defaultVal, "error", err)
    }
    return defaultVal
  }
  return i
}

// RequireEnv returns the value of key or an error when it is unset or empty.
// Startup configuration the process cannot run without goes through here.
func RequireEnv(key string, log *logger.Logger) (string, error) {
  val, ok := os.LookupEnv(key)
  if !ok || val == "" {
    if log != nil {
      log.Error("Required environment variable is missing", "env_var", key)
    }
    return "", fmt.Errorf("required environment variable %s is not set", key)
  }
  return val, nil
}
