package http

import (
	"context"
	"net/http"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/security"
)

type contextKey string

const actorContextKey contextKey = "actor"

// SessionMiddleware validates the session cookie and stashes the caller's
// identity on the request context.
type SessionMiddleware struct {
	tokens     security.TokenManager
	cookieName string
}

func NewSessionMiddleware(tokens security.TokenManager, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, cookieName: cookieName}
}

func (m *SessionMiddleware) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}
		claims, err := m.tokens.Validate(cookie.Value)
		if err != nil {
			logger.Debug("Rejected session token", "error", err)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired session"})
			return
		}
		ctx := context.WithValue(r.Context(), actorContextKey, claims.Actor())
		next(w, r.WithContext(ctx))
	}
}

func (m *SessionMiddleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireSession(func(w http.ResponseWriter, r *http.Request) {
		if !ActorFromContext(r).IsAdmin() {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "Unauthorized"})
			return
		}
		next(w, r)
	})
}

// ActorFromContext returns the identity placed on the context by
// RequireSession. The zero Actor is returned for unauthenticated requests.
func ActorFromContext(r *http.Request) domain.Actor {
	actor, _ := r.Context().Value(actorContextKey).(domain.Actor)
	return actor
}
