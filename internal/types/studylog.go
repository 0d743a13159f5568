package types

import (
	"time"

	"github.com/google/uuid"
)

// StudyLog rows are append-only: written once per logged session, never
// updated, only bulk-deleted by their owner.
type StudyLog struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"index;not null;column:user_id" json:"user_id"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Topic           string    `gorm:"not null;column:topic" json:"topic"`
	DurationMinutes int       `gorm:"not null;column:duration_minutes" json:"duration_minutes"`
	XPEarned        int       `gorm:"not null;column:xp_earned" json:"xp_earned"`
	Timestamp       time.Time `gorm:"index;not null;column:timestamp" json:"timestamp"`
}

func (StudyLog) TableName() string {
	return "study_logs"
}
