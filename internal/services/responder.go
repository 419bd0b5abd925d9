package services

import (
  "math/rand/v2"

  "github.com/parley-org/parley-backend/internal/logger"
)

// PlaceholderReplies is the fixed set of canned bot replies. The selector
// below is a stand-in for a future content-aware responder; the user's
// message is persisted but never inspected here.
var PlaceholderReplies = []string{
  "That's an interesting point! Tell me more.",
  "I see what you mean. How does that make you feel?",
  "Thanks for sharing that with me.",
  "Could you elaborate on that a bit?",
  "That's a great question. Let me think about it.",
  "I understand. Is there anything else on your mind?",
  "Fascinating! I hadn't considered that before.",
  "Let's explore that idea together.",
}

type Responder interface {
  Pick() string
}

type cannedResponder struct {
  log       *logger.Logger
  replies   []string
}

func NewCannedResponder(log *logger.Logger) Responder {
  return &cannedResponder{
    log:      log.With("service", "CannedResponder"),
    replies:  PlaceholderReplies,
  }
}

// Pick returns one reply uniformly at random. Deliberately non-deterministic.
func (cr *cannedResponder) Pick() string {
  return cr.replies[rand.IntN(len(cr.replies))]
}
