package auth

import "github.com/asavirtual/flightboard-backend/internal/staff"

// LoginRequest is the credential pair submitted to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the authenticated account without its hash.
type LoginResponse struct {
	User *staff.StaffUserDTO `json:"user"`
}
