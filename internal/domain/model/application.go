package model

import (
	"errors"
	"time"
	"unicode/utf8"
)

const maxCoverNoteLen = 8000

// ApplicationStatus is the review state of a job application.
type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationReviewed  ApplicationStatus = "reviewed"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
)

// Valid reports whether the application status is supported.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationSubmitted, ApplicationReviewed, ApplicationAccepted, ApplicationRejected:
		return true
	default:
		return false
	}
}

// Application is a seeker's application to a job posting.
// (job_id, user_id) is unique: one application per seeker per posting.
type Application struct {
	ID        string            `json:"id"         db:"id"`
	JobID     string            `json:"job_id"     db:"job_id"`
	UserID    string            `json:"user_id"    db:"user_id"`
	CoverNote string            `json:"cover_note" db:"cover_note"`
	Status    ApplicationStatus `json:"status"     db:"status"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

// CreateApplicationRequest represents parameters to apply to a job.
type CreateApplicationRequest struct {
	JobID     string `json:"job_id"`
	CoverNote string `json:"cover_note,omitempty"`
}

// Validate validates CreateApplicationRequest.
func (r *CreateApplicationRequest) Validate() error {
	if r.JobID == "" {
		return errors.New("job_id is required")
	}
	if utf8.RuneCountInString(r.CoverNote) > maxCoverNoteLen {
		return errors.New("cover_note cannot exceed 8000 characters")
	}
	return nil
}

// ApplicationsListOptions controls paging and filtering for listing applications.
type ApplicationsListOptions struct {
	Limit  int
	Offset int
	JobID  *string            // exact match
	UserID *string            // exact match
	Status *ApplicationStatus // exact match
}
