package service

import (
	"context"

	"github.com/hireline/hireline-api/internal/core"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
)

// DefaultGigListingFeeCents is the flat fee recorded when a gig is approved.
const DefaultGigListingFeeCents = 2500

// GigServiceOptions groups dependencies for GigService.
type GigServiceOptions struct {
	Gigs            core.GigRepository
	ListingFeeCents int // defaults to DefaultGigListingFeeCents when zero
}

// GigService orchestrates gig submission and admin moderation.
type GigService struct {
	gigs     core.GigRepository
	feeCents int
}

// NewGigService constructs a new GigService.
func NewGigService(opts GigServiceOptions) *GigService {
	fee := opts.ListingFeeCents
	if fee <= 0 {
		fee = DefaultGigListingFeeCents
	}
	return &GigService{gigs: opts.Gigs, feeCents: fee}
}

// Create submits a gig for moderation. It starts pending and stays hidden
// from seekers until approved.
func (s *GigService) Create(ctx context.Context, actor Actor, req *model.CreateGigRequest) (*model.Gig, error) {
	return s.gigs.Create(ctx, actor.UserID, req)
}

// GetByID retrieves a gig. Pending and rejected gigs are only visible to
// their owner and the admin.
func (s *GigService) GetByID(ctx context.Context, actor Actor, id string) (*model.Gig, error) {
	gig, err := s.gigs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if gig.Status != model.GigApproved && gig.EmployerID != actor.UserID && !actor.IsAdmin() {
		return nil, apperrors.NotFound("Gig not found")
	}
	return gig, nil
}

// ListPublic returns approved gigs regardless of what filter the caller asked for.
func (s *GigService) ListPublic(ctx context.Context, opts model.GigsListOptions) ([]*model.Gig, error) {
	approved := model.GigApproved
	opts.Status = &approved
	return s.gigs.ListWithOptions(ctx, opts)
}

// ListMine returns the acting employer's gigs in every moderation state.
func (s *GigService) ListMine(ctx context.Context, actor Actor, opts model.GigsListOptions) ([]*model.Gig, error) {
	opts.EmployerID = &actor.UserID
	return s.gigs.ListWithOptions(ctx, opts)
}

// ListForModeration returns gigs for the admin queue, typically filtered
// to pending.
func (s *GigService) ListForModeration(ctx context.Context, opts model.GigsListOptions) ([]*model.Gig, error) {
	return s.gigs.ListWithOptions(ctx, opts)
}

// Approve moves a pending gig to approved and records the listing fee in
// the payments ledger.
func (s *GigService) Approve(ctx context.Context, id string) (*model.Gig, *model.Payment, error) {
	return s.gigs.Approve(ctx, id, s.feeCents)
}

// Reject moves a pending gig to rejected.
func (s *GigService) Reject(ctx context.Context, id string) (*model.Gig, error) {
	return s.gigs.Reject(ctx, id)
}
