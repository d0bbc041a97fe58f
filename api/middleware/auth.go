package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/asavirtual/flightboard-backend/api/responses"
	"github.com/asavirtual/flightboard-backend/pkg/db/models"
	pkgerrors "github.com/asavirtual/flightboard-backend/pkg/errors"
	"github.com/asavirtual/flightboard-backend/pkg/logger"
	"github.com/asavirtual/flightboard-backend/pkg/session"
	"gorm.io/gorm"
)

type staffDirectory interface {
	FindByUsername(ctx context.Context, username string) (*models.StaffUser, error)
}

// Auth reads the session cookie pair and validates it against the staff
// directory. The cookie role is never trusted on its own: the stored role
// wins, and a pair that no longer matches an account is rejected. The
// validated session is seeded into the request context for handlers and
// into the log context for every downstream line.
func Auth(mgr *session.Manager, directory staffDirectory, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := mgr.Read(r)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			user, err := directory.FindByUsername(r.Context(), sess.Username)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session invalid"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
				return
			}
			if user.Role != sess.Role {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session invalid"))
				return
			}

			ctx := WithSession(r.Context(), sess)
			if logg != nil {
				ctx = logg.WithUsername(ctx, sess.Username)
				ctx = logg.WithActorRole(ctx, sess.Role.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOwner gates a subtree to owner sessions. It assumes Auth already
// ran; a missing session is treated as unauthenticated.
func RequireOwner(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			if !sess.IsOwner() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "owner role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
