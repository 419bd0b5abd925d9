package types

import (
  "time"

  "github.com/google/uuid"
)

// User records are immutable after creation: there is no update or delete
// lifecycle for accounts in this system.
type User struct {
  ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  Username    string        `gorm:"uniqueIndex;not null;column:username" json:"username"`
  Password    string        `gorm:"not null;column:password" json:"-"`

  CreatedAt   time.Time     `gorm:"not null;default:now()" json:"createdAt"`
}

func (User) TableName() string {
  return "user"
}
