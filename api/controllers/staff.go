package controllers

import (
	"net/http"

	"github.com/asavirtual/flightboard-backend/api/middleware"
	"github.com/asavirtual/flightboard-backend/api/responses"
	"github.com/asavirtual/flightboard-backend/api/validators"
	"github.com/asavirtual/flightboard-backend/internal/staff"
	"github.com/asavirtual/flightboard-backend/pkg/enums"
	pkgerrors "github.com/asavirtual/flightboard-backend/pkg/errors"
	"github.com/asavirtual/flightboard-backend/pkg/logger"
	"github.com/asavirtual/flightboard-backend/pkg/session"
)

// StaffList returns the directory for the owner's management view.
func StaffList(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		users, err := svc.List(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, users)
	}
}

type createStaffRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Role     string `json:"role" validate:"required,oneof=owner hr personnel"`
}

// StaffCreate provisions a new staff account.
func StaffCreate(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var req createStaffRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseStaffRole(req.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid staff role"))
			return
		}

		user, err := svc.Create(r.Context(), sess, staff.CreateStaffInput{
			Username: validators.SanitizeString(req.Username, 64),
			Password: req.Password,
			Role:     role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

type updateStaffRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=2,max=64"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6,max=128"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=owner hr personnel"`
}

// StaffUpdate applies a partial patch to an account.
func StaffUpdate(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateStaffRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := staff.UpdateStaffInput{Username: req.Username, Password: req.Password}
		if req.Role != nil {
			role, err := enums.ParseStaffRole(*req.Role)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid staff role"))
				return
			}
			input.Role = &role
		}

		user, err := svc.Update(r.Context(), sess, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// StaffDelete removes an account. Owners cannot delete themselves.
func StaffDelete(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), sess, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type updateProfileRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewUsername     string `json:"new_username,omitempty" validate:"omitempty,min=2,max=64"`
	NewPassword     string `json:"new_password,omitempty" validate:"omitempty,min=6,max=128"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

// ProfileUpdate lets the owner rotate their own credentials. The new cookie
// pair is reissued so a username change doesn't log them out.
func ProfileUpdate(svc staff.Service, sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var req updateProfileRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.UpdateProfile(r.Context(), sess, staff.UpdateProfileInput{
			CurrentPassword: req.CurrentPassword,
			NewUsername:     validators.SanitizeString(req.NewUsername, 64),
			NewPassword:     req.NewPassword,
			ConfirmPassword: req.ConfirmPassword,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessions.Issue(w, session.Session{Username: user.Username, Role: user.Role})
		responses.WriteSuccess(w, user)
	}
}
