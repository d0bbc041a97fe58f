package models

import (
	"time"

	"github.com/asavirtual/flightboard-backend/pkg/enums"
	"github.com/google/uuid"
)

// StaffUser represents a staff account in the directory. Passwords are stored
// as Argon2id hashes only.
type StaffUser struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Username     string          `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	Role         enums.StaffRole `gorm:"type:text;not null"`
	CreatedBy    string          `gorm:"column:created_by;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the historical table name.
func (StaffUser) TableName() string {
	return "staff_users"
}
