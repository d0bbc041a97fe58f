package controllers

import (
	"net/http"

	"github.com/asavirtual/flightboard-backend/api/middleware"
	"github.com/asavirtual/flightboard-backend/api/responses"
	"github.com/asavirtual/flightboard-backend/api/validators"
	"github.com/asavirtual/flightboard-backend/internal/auditlog"
	"github.com/asavirtual/flightboard-backend/pkg/enums"
	pkgerrors "github.com/asavirtual/flightboard-backend/pkg/errors"
	"github.com/asavirtual/flightboard-backend/pkg/logger"
)

// LogsList returns the action trail newest-first.
func LogsList(svc auditlog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		entries, err := svc.List(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

type createLogRequest struct {
	Action     string `json:"action" validate:"required,oneof=kick warn ban other"`
	TargetUser string `json:"target_user" validate:"required,max=64"`
	Reason     string `json:"reason,omitempty" validate:"max=512"`
}

// LogsCreate records an action attributed to the authenticated staff member.
func LogsCreate(svc auditlog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var req createLogRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		action, err := enums.ParseLogAction(req.Action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid log action"))
			return
		}

		entry, err := svc.Create(r.Context(), sess, auditlog.CreateEntryInput{
			Action:     action,
			TargetUser: validators.SanitizeString(req.TargetUser, 64),
			Reason:     validators.SanitizeString(req.Reason, 512),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// LogsDelete removes an entry from the trail.
func LogsDelete(svc auditlog.Service, logg *logger.Logger) http.HandlerFunc {
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
