package normalization

import (
  "strings"
)

// ParseInputString trims surrounding whitespace from user-supplied input.
func ParseInputString(s string) string {
  return strings.TrimSpace(s)
}

// ParseUsername trims and lowercases a username so uniqueness checks are
// case-insensitive.
func ParseUsername(s string) string {
  return strings.ToLower(strings.TrimSpace(s))
}
