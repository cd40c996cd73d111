package model

import "time"

// PaymentPurpose categorizes a ledger entry.
type PaymentPurpose string

const (
	// PaymentPurposeGigListing is the flat fee recorded when a gig is approved.
	PaymentPurposeGigListing PaymentPurpose = "gig_listing"
)

// Payment is an immutable ledger entry. Rows are only ever inserted.
type Payment struct {
	ID          string         `json:"id"           db:"id"`
	EmployerID  string         `json:"employer_id"  db:"employer_id"`
	AmountCents int            `json:"amount_cents" db:"amount_cents"`
	Currency    string         `json:"currency"     db:"currency"`
	Purpose     PaymentPurpose `json:"purpose"      db:"purpose"`
	ReferenceID string         `json:"reference_id" db:"reference_id"`
	CreatedAt   time.Time      `json:"created_at"   db:"created_at"`
}

// PaymentsListOptions controls paging and filtering for listing ledger entries.
type PaymentsListOptions struct {
	Limit      int
	Offset     int
	EmployerID *string // exact match
}

// PlatformStats aggregates the admin dashboard counters in one shape.
type PlatformStats struct {
	UsersByRole  map[string]int `json:"users_by_role"`
	OpenJobs     int            `json:"open_jobs"`
	ClosedJobs   int            `json:"closed_jobs"`
	GigsByStatus map[string]int `json:"gigs_by_status"`
	OpenTickets  int            `json:"open_tickets"`
	RevenueCents int64          `json:"revenue_cents"`
}
