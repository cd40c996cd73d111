package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTicketSubjectLen = 255
	maxTicketBodyLen    = 8000
)

// TicketStatus is the lifecycle state of a support ticket.
type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

// Valid reports whether the ticket status is supported.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketClosed:
		return true
	default:
		return false
	}
}

// Ticket is a support request raised by any authenticated user.
type Ticket struct {
	ID        string       `json:"id"                  db:"id"`
	UserID    string       `json:"user_id"             db:"user_id"`
	Subject   string       `json:"subject"             db:"subject"`
	Body      string       `json:"body"                db:"body"`
	Status    TicketStatus `json:"status"              db:"status"`
	ClosedAt  *time.Time   `json:"closed_at,omitempty" db:"closed_at"`
	CreatedAt time.Time    `json:"created_at"          db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"          db:"updated_at"`
}

// CreateTicketRequest represents parameters to open a Ticket.
type CreateTicketRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Validate validates CreateTicketRequest.
func (r *CreateTicketRequest) Validate() error {
	subject := strings.TrimSpace(r.Subject)
	if subject == "" {
		return errors.New("subject is required and cannot be empty")
	}
	if utf8.RuneCountInString(subject) > maxTicketSubjectLen {
		return errors.New("subject cannot exceed 255 characters")
	}
	if utf8.RuneCountInString(r.Body) > maxTicketBodyLen {
		return errors.New("body cannot exceed 8000 characters")
	}
	return nil
}

// TicketsListOptions controls paging and filtering for listing tickets.
type TicketsListOptions struct {
	Limit  int
	Offset int
	Status *TicketStatus // exact match
	UserID *string       // exact match
}
