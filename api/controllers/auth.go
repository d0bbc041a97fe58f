package controllers

import (
	"net/http"

	"github.com/asavirtual/flightboard-backend/api/middleware"
	"github.com/asavirtual/flightboard-backend/api/responses"
	"github.com/asavirtual/flightboard-backend/api/validators"
	"github.com/asavirtual/flightboard-backend/internal/auth"
	pkgerrors "github.com/asavirtual/flightboard-backend/pkg/errors"
	"github.com/asavirtual/flightboard-backend/pkg/logger"
	"github.com/asavirtual/flightboard-backend/pkg/session"
)

// Login verifies credentials and issues the session cookie pair.
func Login(svc auth.Service, sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		req.Username = validators.SanitizeString(req.Username, 64)

		resp, err := svc.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessions.Issue(w, session.Session{
			Username: resp.User.Username,
			Role:     resp.User.Role,
		})
		responses.WriteSuccess(w, resp)
	}
}

// Logout clears the session cookie pair. It succeeds even when no session
// cookies are present.
func Logout(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.Clear(w)
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// SessionInfo echoes the authenticated session so the frontend can restore
// state after a reload.
func SessionInfo(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}
		responses.WriteSuccess(w, map[string]string{
			"username": sess.Username,
			"role":     sess.Role.String(),
		})
	}
}
