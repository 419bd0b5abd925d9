package services

import "errors"

var (
  ErrMissingFields      = errors.New("username and password are required")
  ErrUsernameTaken      = errors.New("username is already taken")
  ErrInvalidCredentials = errors.New("invalid username or password")
  ErrInvalidToken       = errors.New("invalid or expired token")
  ErrEmptyMessage       = errors.New("message must not be empty")
  ErrInternal           = errors.New("internal server error")
)
