package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
	"github.com/hireline/hireline-api/internal/ports"
	"github.com/google/uuid"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenVerifier = (*MockTokenVerifier)(nil)
	_ ports.SessionStore  = (*MemorySessionStore)(nil)
	_ ports.UserDirectory = (*MemoryUserDirectory)(nil)
)

// MockTokenVerifier simulates an identity provider for tests.
type MockTokenVerifier struct {
	VerifyFunc func(ctx context.Context, rawToken string) (domainauth.Identity, error)

	// DefaultIdentity is returned for any non-empty token when VerifyFunc
	// is nil.
	DefaultIdentity domainauth.Identity
}

// NewMockTokenVerifier creates a MockTokenVerifier with sensible defaults.
func NewMockTokenVerifier() *MockTokenVerifier {
	return &MockTokenVerifier{
		DefaultIdentity: domainauth.Identity{
			SubjectID: "mock-subject-1",
			FirstName: "Mock",
			LastName:  "User",
			Email:     "mock.user@example.com",
		},
	}
}

func (m *MockTokenVerifier) Verify(ctx context.Context, rawToken string) (domainauth.Identity, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, rawToken)
	}
	if rawToken == "" {
		return domainauth.Identity{}, errors.New("invalid credentials")
	}

	id := m.DefaultIdentity
	id.IssuedAt = time.Now()
	id.ExpiresAt = time.Now().Add(time.Hour)
	return id, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are currently stored.
func (m *MemorySessionStore) Len() int { return len(m.sessions) }

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// MemoryUserDirectory is an in-memory user directory keyed by external
// subject id. It mirrors the database semantics the auth service relies
// on: role applies at creation only, and at most one admin may exist.
type MemoryUserDirectory struct {
	users map[string]*model.User // keyed by external id
}

// NewMemoryUserDirectory creates an empty in-memory user directory.
func NewMemoryUserDirectory() *MemoryUserDirectory {
	return &MemoryUserDirectory{users: make(map[string]*model.User)}
}

func (d *MemoryUserDirectory) FindByExternalID(_ context.Context, externalID string) (*model.User, error) {
	u, ok := d.users[externalID]
	if !ok {
		return nil, apperrors.NotFound("User not found")
	}
	copied := *u
	return &copied, nil
}

func (d *MemoryUserDirectory) Upsert(_ context.Context, params model.UpsertUserParams) (*model.User, error) {
	now := time.Now()

	if existing, ok := d.users[params.ExternalID]; ok {
		existing.Email = params.Email
		existing.FirstName = params.FirstName
		existing.LastName = params.LastName
		existing.UpdatedAt = now
		copied := *existing
		return &copied, nil
	}

	if params.Role == domainauth.RoleAdmin {
		for _, u := range d.users {
			if u.Role == domainauth.RoleAdmin {
				return nil, apperrors.Conflict("An administrator account already exists.")
			}
		}
	}

	user := &model.User{
		ID:         uuid.NewString(),
		ExternalID: params.ExternalID,
		Email:      params.Email,
		FirstName:  params.FirstName,
		LastName:   params.LastName,
		Role:       params.Role,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	d.users[params.ExternalID] = user
	copied := *user
	return &copied, nil
}

func (d *MemoryUserDirectory) CountByRole(_ context.Context, role domainauth.Role) (int, error) {
	count := 0
	for _, u := range d.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

// SetActive flips a stored user's active flag, for exercising the
// deactivated sign-in path.
func (d *MemoryUserDirectory) SetActive(externalID string, active bool) error {
	u, ok := d.users[externalID]
	if !ok {
		return fmt.Errorf("no user with external id %q", externalID)
	}
	u.Active = active
	return nil
}
