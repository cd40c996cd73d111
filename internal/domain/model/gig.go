package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxGigTitleLen = 255
	maxGigDescLen  = 20000
)

// GigStatus is the moderation state of a gig.
type GigStatus string

const (
	GigPending  GigStatus = "pending"
	GigApproved GigStatus = "approved"
	GigRejected GigStatus = "rejected"
)

// Valid reports whether the gig status is supported.
func (s GigStatus) Valid() bool {
	switch s {
	case GigPending, GigApproved, GigRejected:
		return true
	default:
		return false
	}
}

// Gig is a short engagement posted by an employer. New gigs start in
// pending and become visible to seekers only once an admin approves them.
type Gig struct {
	ID          string    `json:"id"           db:"id"`
	EmployerID  string    `json:"employer_id"  db:"employer_id"`
	Title       string    `json:"title"        db:"title"`
	Description string    `json:"description"  db:"description"`
	BudgetCents int       `json:"budget_cents" db:"budget_cents"`
	Currency    string    `json:"currency"     db:"currency"`
	Status      GigStatus `json:"status"       db:"status"`
	CreatedAt   time.Time `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"   db:"updated_at"`
}

// CreateGigRequest represents parameters to create a Gig.
type CreateGigRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	BudgetCents int    `json:"budget_cents"`
	Currency    string `json:"currency,omitempty"`
}

// Validate validates CreateGigRequest.
func (r *CreateGigRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxGigTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if utf8.RuneCountInString(r.Description) > maxGigDescLen {
		return errors.New("description cannot exceed 20000 characters")
	}
	if r.BudgetCents <= 0 {
		return errors.New("budget_cents must be > 0")
	}
	if r.Currency == "" {
		r.Currency = "USD"
	}
	if len(r.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}
	r.Currency = strings.ToUpper(r.Currency)
	return nil
}

// GigsListOptions controls paging and filtering for listing gigs.
type GigsListOptions struct {
	Limit      int
	Offset     int
	Status     *GigStatus // exact match
	EmployerID *string    // exact match
	Q          *string    // substring match on title (ILIKE)
}
