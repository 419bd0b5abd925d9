package repos

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/parley-org/parley-backend/internal/logger"
    "github.com/parley-org/parley-backend/internal/types"
)

type ChatMessageRepo interface {
    CreateMessages(ctx context.Context, tx *gorm.DB, msgs []*types.ChatMessage) ([]*types.ChatMessage, error)
    GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ChatMessage, error)
}

type chatMessageRepo struct {
    db      *gorm.DB
    log     *logger.Logger
}

func NewChatMessageRepo(db *gorm.DB, baseLog *logger.Logger) ChatMessageRepo {
    return &chatMessageRepo{
        db:     db,
        log:    baseLog.With("repo", "ChatMessageRepo"),
    }
}

func (cmr *chatMessageRepo) CreateMessages(ctx context.Context, tx *gorm.DB, msgs []*types.ChatMessage) ([]*types.ChatMessage, error) {
    if tx == nil {
        tx = cmr.db
    }
    if len(msgs) == 0 {
        return msgs, nil
    }
    if err := tx.WithContext(ctx).Create(&msgs).Error; err != nil {
        cmr.log.Error("failed to create chat messages", "error", err)
        return nil, err
    }
    return msgs, nil
}

// GetByUserID returns the user's messages ordered by creation time ascending.
func (cmr *chatMessageRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ChatMessage, error) {
    if tx == nil {
        tx = cmr.db
    }
    var msgs []*types.ChatMessage
    if err := tx.WithContext(ctx).
        Where("user_id = ?", userID).
        Order("created_at ASC").
        Find(&msgs).Error; err != nil {
        cmr.log.Error("failed to get chat messages by userID", "error", err)
        return nil, err
    }
    return msgs, nil
}
