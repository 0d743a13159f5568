package types

import (
	"time"

	"github.com/google/uuid"
)

// UserStats carries the running XP total for one user. Exactly one row per
// user; the total never goes below zero.
type UserStats struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex;not null;column:user_id" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	TotalXP   int       `gorm:"not null;default:0;column:total_xp" json:"total_xp"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (UserStats) TableName() string {
	return "user_stats"
}
