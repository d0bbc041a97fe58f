package models

import (
	"time"

	"github.com/google/uuid"
)

// Flight is a schedulable content item with an activation flag and an
// interest counter. Flights are created inactive and are hard deleted.
type Flight struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code       string    `gorm:"type:text;not null;uniqueIndex"`
	Route      string    `gorm:"type:text;not null"`
	Date       string    `gorm:"type:text;not null"`
	Time       string    `gorm:"type:text;not null"`
	Gate       string    `gorm:"type:text;not null"`
	Interested int       `gorm:"not null;default:0"`
	Active     bool      `gorm:"not null;default:false"`
	Link       *string   `gorm:"column:link"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
