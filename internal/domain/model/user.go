//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
)

const (
	maxEmailLen    = 255
	maxNameLen     = 120
	maxHeadlineLen = 255
	maxSummaryLen  = 4000
	maxLocationLen = 255
)

// User is an application user keyed by the external identity subject.
// Exactly one user may hold the admin role; the directory enforces this
// with a partial unique index.
type User struct {
	ID         string          `json:"id"          db:"id"`
	ExternalID string          `json:"external_id" db:"external_id"`
	Email      string          `json:"email"       db:"email"`
	FirstName  string          `json:"first_name"  db:"first_name"`
	LastName   string          `json:"last_name"   db:"last_name"`
	Role       domainauth.Role `json:"role"        db:"role"`
	Active     bool            `json:"active"      db:"active"`
	Verified   bool            `json:"verified"    db:"verified"`
	CreatedAt  time.Time       `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"  db:"updated_at"`
}

// UpsertUserParams carries the fields written on first sign-in or refreshed
// on subsequent sign-ins. Role is only applied at creation; it never
// overwrites an existing user's role.
type UpsertUserParams struct {
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
	Role       domainauth.Role
}

// Validate validates UpsertUserParams.
func (p *UpsertUserParams) Validate() error {
	if strings.TrimSpace(p.ExternalID) == "" {
		return errors.New("external_id is required")
	}
	if utf8.RuneCountInString(p.Email) > maxEmailLen {
		return errors.New("email cannot exceed 255 characters")
	}
	if p.Role == "" {
		p.Role = domainauth.RoleJobSeeker
	}
	if !p.Role.Valid() {
		return errors.New("role must be one of job_seeker, employer, admin")
	}
	return nil
}

// UsersListOptions controls paging and filtering for listing users.
// Sort supports "created_at" and "email"; Dir supports "asc"/"desc".
type UsersListOptions struct {
	Limit  int
	Offset int
	Q      *string          // substring match on email (ILIKE)
	Role   *domainauth.Role // exact match
	Active *bool            // exact match
	Sort   string
	Dir    string
}

// Profile is the one-to-one CV profile belonging to a user.
type Profile struct {
	UserID    string    `json:"user_id"            db:"user_id"`
	Headline  string    `json:"headline"           db:"headline"`
	Summary   string    `json:"summary"            db:"summary"`
	Skills    []string  `json:"skills"             db:"skills"`
	Location  string    `json:"location"           db:"location"`
	CVURL     *string   `json:"cv_url,omitempty"   db:"cv_url"`
	UpdatedAt time.Time `json:"updated_at"         db:"updated_at"`
}

// UpdateProfileRequest represents parameters to update a user's profile.
type UpdateProfileRequest struct {
	Headline *string  `json:"headline,omitempty"`
	Summary  *string  `json:"summary,omitempty"`
	Skills   []string `json:"skills,omitempty"`
	Location *string  `json:"location,omitempty"`
	CVURL    *string  `json:"cv_url,omitempty"`
}

// Validate validates UpdateProfileRequest.
func (r *UpdateProfileRequest) Validate() error {
	if r.Headline != nil && utf8.RuneCountInString(*r.Headline) > maxHeadlineLen {
		return errors.New("headline cannot exceed 255 characters")
	}
	if r.Summary != nil && utf8.RuneCountInString(*r.Summary) > maxSummaryLen {
		return errors.New("summary cannot exceed 4000 characters")
	}
	if r.Location != nil && utf8.RuneCountInString(*r.Location) > maxLocationLen {
		return errors.New("location cannot exceed 255 characters")
	}
	return nil
}
