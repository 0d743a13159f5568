package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlannedTask is one calendar entry. Date and time are free-form strings as
// supplied by the client; no uniqueness is enforced on them. KeyConcepts and
// SuggestedResources hold JSON-serialized string lists.
type PlannedTask struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID      `gorm:"index;not null;column:user_id" json:"user_id"`
	User               *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Date               string         `gorm:"index;not null;column:date" json:"date"`
	Time               string         `gorm:"column:time" json:"time"`
	Task               string         `gorm:"not null;column:task" json:"task"`
	Type               string         `gorm:"column:type" json:"type"`
	Reason             string         `gorm:"column:reason" json:"reason"`
	KeyConcepts        datatypes.JSON `gorm:"column:key_concepts" json:"-"`
	SuggestedResources datatypes.JSON `gorm:"column:suggested_resources" json:"-"`
	Completed          bool           `gorm:"not null;default:false;column:completed" json:"completed"`
	CreatedAt          time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null" json:"updated_at"`
}

func (PlannedTask) TableName() string {
	return "planned_tasks"
}
