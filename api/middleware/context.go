package middleware

import (
	"context"

	"github.com/asavirtual/flightboard-backend/pkg/session"
)

type contextKey string

const ctxSession contextKey = "session"

// SessionFromContext returns the authenticated session seeded by Auth.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	if ctx == nil {
		return session.Session{}, false
	}
	if v, ok := ctx.Value(ctxSession).(session.Session); ok {
		return v, true
	}
	return session.Session{}, false
}

// WithSession injects the authenticated session into the context.
func WithSession(ctx context.Context, sess session.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, sess)
}
