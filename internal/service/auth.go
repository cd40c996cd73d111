package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
	"github.com/hireline/hireline-api/internal/ports"
)

// DefaultSessionTTL applies when options leave SessionTTL zero.
const DefaultSessionTTL = 120 * time.Hour

// ErrSessionExpired is returned by GetSession when the record outlived its
// expiry; callers treat it the same as a missing session.
var ErrSessionExpired = errors.New("session expired")

// AuthServiceOptions groups dependencies for AuthService.
// Users may be nil when no database is configured; the service then runs
// degraded: every session resolves to the job_seeker role.
type AuthServiceOptions struct {
	Verifier   ports.TokenVerifier
	Sessions   ports.SessionStore
	Users      ports.UserDirectory
	SessionTTL time.Duration
}

// AuthService owns the session boundary: it exchanges verified identity
// tokens for server-side sessions and resolves the role carried by each
// session artifact.
type AuthService struct {
	verifier   ports.TokenVerifier
	sessions   ports.SessionStore
	users      ports.UserDirectory
	sessionTTL time.Duration
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		verifier:   opts.Verifier,
		sessions:   opts.Sessions,
		users:      opts.Users,
		sessionTTL: ttl,
	}
}

// SignInResult contains the minted session and, when a directory is
// configured, the backing user record.
type SignInResult struct {
	Session domainauth.Session
	User    *model.User
}

// SignIn verifies an identity token and mints a session. Unknown subjects
// are created as job seekers; returning subjects keep their stored role.
func (s *AuthService) SignIn(ctx context.Context, rawToken string) (*SignInResult, error) {
	return s.establishSession(ctx, rawToken, domainauth.RoleJobSeeker)
}

// SignUp verifies an identity token and creates the user with the
// requested role. The role only applies to new subjects; an existing user
// keeps their stored role. Requesting admin when an admin already exists
// fails with a conflict before any write.
func (s *AuthService) SignUp(ctx context.Context, rawToken string, role domainauth.Role) (*SignInResult, error) {
	if role == "" {
		role = domainauth.RoleJobSeeker
	}
	if !role.Valid() {
		return nil, apperrors.ValidationField("role", "role must be one of job_seeker, employer, admin")
	}

	if role == domainauth.RoleAdmin && s.users != nil {
		count, err := s.users.CountByRole(ctx, domainauth.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("count admins: %w", err)
		}
		if count > 0 {
			return nil, apperrors.Conflict("An administrator account already exists.")
		}
	}

	return s.establishSession(ctx, rawToken, role)
}

// establishSession is the shared verify → upsert → mint path. creationRole
// is only honored for subjects the directory has never seen.
func (s *AuthService) establishSession(
	ctx context.Context,
	rawToken string,
	creationRole domainauth.Role,
) (*SignInResult, error) {
	identity, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		// Never leak the provider sub-reason to the caller.
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "Invalid credentials")
	}

	role := domainauth.RoleJobSeeker
	var user *model.User
	if s.users != nil {
		// A deactivated account is rejected before the upsert so the
		// failed sign-in leaves the directory record untouched.
		existing, findErr := s.users.FindByExternalID(ctx, identity.SubjectID)
		if findErr != nil && !apperrors.IsNotFound(findErr) {
			return nil, fmt.Errorf("find user: %w", findErr)
		}
		if existing != nil && !existing.Active {
			return nil, apperrors.Forbidden("This account has been deactivated.")
		}

		user, err = s.users.Upsert(ctx, model.UpsertUserParams{
			ExternalID: identity.SubjectID,
			Email:      identity.Email,
			FirstName:  identity.FirstName,
			LastName:   identity.LastName,
			Role:       creationRole,
		})
		if err != nil {
			return nil, fmt.Errorf("upsert user: %w", err)
		}
		if !user.Active {
			return nil, apperrors.Forbidden("This account has been deactivated.")
		}
		role = user.Role
	}

	userID := identity.SubjectID
	if user != nil {
		userID = user.ID
	}
	session := domainauth.Session{
		ID:        generateSessionID(),
		SubjectID: identity.SubjectID,
		UserID:    userID,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Email:     identity.Email,
		Role:      role,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &SignInResult{Session: session, User: user}, nil
}

// GetSession retrieves a session by its opaque artifact value.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	// The store's own TTL may lag the record's expiry; expired records are
	// scrubbed on read.
	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(ErrSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// CurrentUser resolves the directory record behind a session. In degraded
// mode (no directory) it returns nil without error.
func (s *AuthService) CurrentUser(ctx context.Context, session domainauth.Session) (*model.User, error) {
	if s.users == nil {
		return nil, nil
	}
	user, err := s.users.FindByExternalID(ctx, session.SubjectID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Logout removes a session. A missing or empty artifact is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// generateSessionID creates the opaque artifact value handed to clients.
// UUIDs are URL-safe and carry enough entropy for session identifiers.
func generateSessionID() string {
	return uuid.New().String()
}
