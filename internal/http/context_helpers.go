package httpx

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"github.com/hireline/hireline-api/internal/service"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetUserSessionFromContext returns the user session from context and a boolean indicating presence.
func GetUserSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok && session != nil {
		return session, true
	}
	return nil, false
}

// GetSessionFromContext retrieves the session from the request context.
// Maintained for convenience; prefer GetUserSessionFromContext when you need presence info.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	if s, ok := GetUserSessionFromContext(ctx); ok {
		return s
	}
	return nil
}

// IsAnonymous reports whether the current request context carries no session.
func IsAnonymous(ctx context.Context) bool {
	_, ok := GetUserSessionFromContext(ctx)
	return !ok
}

// ActorFromContext builds the service actor for the current session.
// The second return is false for anonymous requests.
func ActorFromContext(ctx context.Context) (service.Actor, bool) {
	s, ok := GetUserSessionFromContext(ctx)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: s.UserID, Role: s.Role}, true
}

// mustActor builds the actor or writes a 401. Route guards normally make
// the failure path unreachable.
func mustActor(w http.ResponseWriter, r *http.Request) (service.Actor, bool) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
	}
	return actor, ok
}
