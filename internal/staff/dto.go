package staff

import (
	"time"

	"github.com/asavirtual/flightboard-backend/pkg/db/models"
	"github.com/asavirtual/flightboard-backend/pkg/enums"
	"github.com/google/uuid"
)

// StaffUserDTO is the transport shape that omits the password hash.
type StaffUserDTO struct {
	ID        uuid.UUID       `json:"id"`
	Username  string          `json:"username"`
	Role      enums.StaffRole `json:"role"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateStaffDTO holds the data required by the repo to persist an account.
// PasswordHash must already be an encoded Argon2id hash.
type CreateStaffDTO struct {
	Username     string
	PasswordHash string
	Role         enums.StaffRole
	CreatedBy    string
}

// UpdateStaffDTO is a partial patch; nil fields are left untouched.
type UpdateStaffDTO struct {
	Username     *string
	PasswordHash *string
	Role         *enums.StaffRole
}

func (u UpdateStaffDTO) columns() map[string]any {
	columns := map[string]any{}
	if u.Username != nil {
		columns["username"] = *u.Username
	}
	if u.PasswordHash != nil {
		columns["password_hash"] = *u.PasswordHash
	}
	if u.Role != nil {
		columns["role"] = u.Role.String()
	}
	return columns
}

func FromModel(u *models.StaffUser) *StaffUserDTO {
	if u == nil {
		return nil
	}
	return &StaffUserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedBy: u.CreatedBy,
		CreatedAt: u.CreatedAt,
	}
}

func (c CreateStaffDTO) ToModel() *models.StaffUser {
	return &models.StaffUser{
		Username:     c.Username,
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		CreatedBy:    c.CreatedBy,
	}
}
