package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleEmployer  Role = "employer"
	RoleJobSeeker Role = "job_seeker"
)

// Valid reports whether the role is one of the supported values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployer, RoleJobSeeker:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a role string and reports whether it is supported.
func ParseRole(value string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(value)))
	if r.Valid() {
		return r, true
	}
	return "", false
}

// Identity represents the verified principal returned by the identity provider.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	SubjectID string // stable external subject identifier (sub)
	FirstName string
	LastName  string
	Email     string
	Picture   string
	IssuedAt  time.Time
	ExpiresAt time.Time // absolute expiry of the presented identity token
}

// Session is the server-side record backing a session artifact. ID is the
// opaque artifact value handed to the client as a cookie; everything else
// stays on the server.
type Session struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subject_id"`
	UserID    string    `json:"user_id"` // internal directory id; SubjectID when degraded

	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
