package repos

import "errors"

var (
  // ErrNotFound means the requested record does not exist.
  ErrNotFound = errors.New("repos: record not found")
  // ErrDuplicateEntry means an insert violated a unique constraint.
  ErrDuplicateEntry = errors.New("repos: duplicate entry")
)
