package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"

  "github.com/parley-org/parley-backend/internal/logger"
  "github.com/parley-org/parley-backend/internal/normalization"
  "github.com/parley-org/parley-backend/internal/repos"
  "github.com/parley-org/parley-backend/internal/types"
)

type ChatService interface {
  SendMessage(ctx context.Context, userID uuid.UUID, message string) (string, error)
  GetHistory(ctx context.Context, userID uuid.UUID) ([]*types.ChatMessage, error)
}

type chatService struct {
  log           *logger.Logger
  messageRepo   repos.ChatMessageRepo
  responder     Responder
}

func NewChatService(
  log           *logger.Logger,
  messageRepo   repos.ChatMessageRepo,
  responder     Responder,
) ChatService {
  serviceLog := log.With("service", "ChatService")
  return &chatService{
    log:          serviceLog,
    messageRepo:  messageRepo,
    responder:    responder,
  }
}

// SendMessage runs one chat turn. The two writes are intentionally
// sequential and untransacted: the user message must be durable before the
// bot write begins, and a crash between them leaves an unpaired user
// message, which is acceptable here.
func (cs *chatService) SendMessage(ctx context.Context, userID uuid.UUID, message string) (string, error) {
  //1) Validate Message
  content := normalization.ParseInputString(message)
  if content == "" {
    cs.log.Warn("Message is empty after trimming, Cannot proceed. Returning error.")
    return "", ErrEmptyMessage
  }

  //2) Persist User Message
  userMsg := &types.ChatMessage{
    ID:           uuid.New(),
    UserID:       userID,
    Content:      content,
    IsFromUser:   true,
  }
  if _, err := cs.messageRepo.CreateMessages(ctx, nil, []*types.ChatMessage{userMsg}); err != nil {
    cs.log.Warn("Failed to persist user message, Cannot proceed. Returning error.", "error", err)
    return "", fmt.Errorf("Failed to persist user message: %w", err)
  }

  //3) Pick and Persist Bot Reply
  reply := cs.responder.Pick()
  botMsg := &types.ChatMessage{
    ID:           uuid.New(),
    UserID:       userID,
    Content:      reply,
    IsFromUser:   false,
  }
  if _, err := cs.messageRepo.CreateMessages(ctx, nil, []*types.ChatMessage{botMsg}); err != nil {
    cs.log.Warn("Failed to persist bot message, Cannot proceed. Returning error.", "error", err)
    return "", fmt.Errorf("Failed to persist bot message: %w", err)
  }
  return reply, nil
}

func (cs *chatService) GetHistory(ctx context.Context, userID uuid.UUID) ([]*types.ChatMessage, error) {
  msgs, err := cs.messageRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    cs.log.Warn("Failed to fetch chat history, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("Failed to fetch chat history: %w", err)
  }
  return msgs, nil
}
