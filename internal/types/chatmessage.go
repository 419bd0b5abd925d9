package types

import (
  "time"

  "github.com/google/uuid"
)

// ChatMessage rows are append-only: one user-authored and one bot-authored
// message is written per chat turn, never mutated or deleted.
type ChatMessage struct {
  ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  UserID       uuid.UUID     `gorm:"index;not null" json:"userId"`
  Content      string        `gorm:"not null;column:content" json:"content"`
  IsFromUser   bool          `gorm:"not null;column:is_from_user" json:"isFromUser"`

  CreatedAt    time.Time     `gorm:"not null;default:now()" json:"createdAt"`
}

func (ChatMessage) TableName() string {
  return "chat_message"
}
