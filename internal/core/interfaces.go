package core

import (
	"context"

	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"github.com/hireline/hireline-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for user and profile data operations.
// It subsumes ports.UserDirectory with the admin-facing operations.
type UserRepository interface {
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Upsert(ctx context.Context, params model.UpsertUserParams) (*model.User, error)
	CountByRole(ctx context.Context, role domainauth.Role) (int, error)
	SetRole(ctx context.Context, id string, role domainauth.Role) (*model.User, error)
	SetActive(ctx context.Context, id string, active bool) (*model.User, error)
	SetVerified(ctx context.Context, id string, verified bool) (*model.User, error)
	ListWithOptions(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error)
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpsertProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.Profile, error)
}

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	Create(ctx context.Context, employerID string, req *model.CreateJobRequest) (*model.Job, error)
	GetByID(ctx context.Context, id string) (*model.Job, error)
	ListWithOptions(ctx context.Context, opts model.JobsListOptions) ([]*model.Job, error)
	Update(ctx context.Context, id string, req model.UpdateJobRequest) (*model.Job, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ApplicationRepository defines the interface for application data operations.
type ApplicationRepository interface {
	Create(ctx context.Context, userID string, req *model.CreateApplicationRequest) (*model.Application, error)
	GetByID(ctx context.Context, id string) (*model.Application, error)
	SetStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error)
	ListWithOptions(ctx context.Context, opts model.ApplicationsListOptions) ([]*model.Application, error)
}

// GigRepository defines the interface for gig data operations. Approve
// records the listing fee atomically with the status change.
type GigRepository interface {
	Create(ctx context.Context, employerID string, req *model.CreateGigRequest) (*model.Gig, error)
	GetByID(ctx context.Context, id string) (*model.Gig, error)
	Approve(ctx context.Context, id string, feeCents int) (*model.Gig, *model.Payment, error)
	Reject(ctx context.Context, id string) (*model.Gig, error)
	ListWithOptions(ctx context.Context, opts model.GigsListOptions) ([]*model.Gig, error)
}

// TicketRepository defines the interface for support ticket data operations.
type TicketRepository interface {
	Create(ctx context.Context, userID string, req *model.CreateTicketRequest) (*model.Ticket, error)
	GetByID(ctx context.Context, id string) (*model.Ticket, error)
	Close(ctx context.Context, id string) (*model.Ticket, error)
	ListWithOptions(ctx context.Context, opts model.TicketsListOptions) ([]*model.Ticket, error)
}

// PaymentRepository defines read access to the payments ledger.
type PaymentRepository interface {
	List(ctx context.Context, opts model.PaymentsListOptions) ([]*model.Payment, error)
	SumRevenue(ctx context.Context) (int64, error)
}

// StatsRepository defines the interface for the admin dashboard counters.
type StatsRepository interface {
	PlatformStats(ctx context.Context) (*model.PlatformStats, error)
}
