package models

import (
	"time"

	"github.com/asavirtual/flightboard-backend/pkg/enums"
	"github.com/google/uuid"
)

// ActionLog records a moderation action taken by a staff member against a
// named target. Entries are immutable once written except for deletion.
type ActionLog struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Timestamp     time.Time       `gorm:"column:timestamp;autoCreateTime"`
	StaffUsername string          `gorm:"column:staff_username;not null"`
	Action        enums.LogAction `gorm:"type:text;not null"`
	TargetUser    string          `gorm:"column:target_user;not null"`
	Reason        string          `gorm:"type:text"`
}

// TableName keeps the historical table name.
func (ActionLog) TableName() string {
	return "action_logs"
}
