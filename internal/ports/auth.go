package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"github.com/hireline/hireline-api/internal/domain/model"
)

// TokenVerifier verifies an externally issued identity token.
// Any provider failure (malformed, expired, revoked, wrong audience)
// surfaces as a single generic error; callers must not leak sub-reasons
// to the end user.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (domainauth.Identity, error)
}

// SessionStore persists and retrieves session records keyed by the opaque
// artifact handed to the client.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// UserDirectory is the persistent store of application users keyed by
// external subject id. A nil directory (database unconfigured) is a valid
// degraded state: callers treat every lookup as "no user found".
type UserDirectory interface {
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
	Upsert(ctx context.Context, params model.UpsertUserParams) (*model.User, error)
	CountByRole(ctx context.Context, role domainauth.Role) (int, error)
}
