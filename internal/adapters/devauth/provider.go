package devauth

// Package devauth provides a simple, config-driven TokenVerifier for local development.

import (
	"context"
	"errors"
	"strings"
	"time"

	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
)

// ErrInvalidCredential mirrors the production verifier's single failure mode.
var ErrInvalidCredential = errors.New("invalid credentials")

// Config controls the dev verifier behavior.
type Config struct {
	UserID        string
	Email         string
	Name          string
	TokenLifetime time.Duration // default 1h when zero
}

// Verifier implements ports.TokenVerifier for local development.
// It accepts any non-empty token and returns the configured identity,
// so the rest of the stack can be exercised without an IdP.
type Verifier struct {
	identity domainauth.Identity
	lifetime time.Duration
}

// NewVerifier constructs a dev verifier from Config.
func NewVerifier(cfg Config) (*Verifier, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	lifetime := cfg.TokenLifetime
	if lifetime == 0 {
		lifetime = time.Hour
	}

	first, last := cfg.Name, ""
	if fields := strings.Fields(cfg.Name); len(fields) > 1 {
		first = fields[0]
		last = strings.Join(fields[1:], " ")
	}

	return &Verifier{
		identity: domainauth.Identity{
			SubjectID: cfg.UserID,
			FirstName: first,
			LastName:  last,
			Email:     cfg.Email,
		},
		lifetime: lifetime,
	}, nil
}

// Verify accepts any non-empty token and returns the dev identity with a
// fresh expiry. Empty tokens still fail so the boundary's rejection path
// stays testable in dev mode.
func (v *Verifier) Verify(_ context.Context, rawToken string) (domainauth.Identity, error) {
	if strings.TrimSpace(rawToken) == "" {
		return domainauth.Identity{}, ErrInvalidCredential
	}
	id := v.identity
	id.IssuedAt = time.Now()
	id.ExpiresAt = time.Now().Add(v.lifetime)
	return id, nil
}
