package service

import (
	"context"

	"github.com/hireline/hireline-api/internal/core"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
)

// TicketServiceOptions groups dependencies for TicketService.
type TicketServiceOptions struct {
	Tickets core.TicketRepository
}

// TicketService orchestrates the support ticket workflow.
type TicketService struct {
	tickets core.TicketRepository
}

// NewTicketService constructs a new TicketService.
func NewTicketService(opts TicketServiceOptions) *TicketService {
	return &TicketService{tickets: opts.Tickets}
}

// Open raises a new ticket for the acting user.
func (s *TicketService) Open(ctx context.Context, actor Actor, req *model.CreateTicketRequest) (*model.Ticket, error) {
	return s.tickets.Create(ctx, actor.UserID, req)
}

// GetByID retrieves a ticket visible to its owner or the admin.
func (s *TicketService) GetByID(ctx context.Context, actor Actor, id string) (*model.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, apperrors.NotFound("Ticket not found")
	}
	return ticket, nil
}

// ListMine returns the acting user's tickets.
func (s *TicketService) ListMine(ctx context.Context, actor Actor, opts model.TicketsListOptions) ([]*model.Ticket, error) {
	opts.UserID = &actor.UserID
	return s.tickets.ListWithOptions(ctx, opts)
}

// ListAll returns tickets across all users for the admin queue.
func (s *TicketService) ListAll(ctx context.Context, opts model.TicketsListOptions) ([]*model.Ticket, error) {
	return s.tickets.ListWithOptions(ctx, opts)
}

// Close resolves an open ticket. Only the admin closes tickets.
func (s *TicketService) Close(ctx context.Context, id string) (*model.Ticket, error) {
	return s.tickets.Close(ctx, id)
}
