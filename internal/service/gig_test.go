package service

import (
	"context"
	"testing"

	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGigFixture(t *testing.T) (*GigService, *fakeGigRepo, *model.Gig) {
	t.Helper()
	repo := newFakeGigRepo()
	svc := NewGigService(GigServiceOptions{Gigs: repo})

	gig, err := svc.Create(context.Background(), employerActor, &model.CreateGigRequest{
		Title:       "Logo design",
		BudgetCents: 50000,
	})
	require.NoError(t, err)
	return svc, repo, gig
}

func TestGigService_CreateStartsPending(t *testing.T) {
	_, _, gig := newGigFixture(t)
	assert.Equal(t, model.GigPending, gig.Status)
}

func TestGigService_PendingGigHiddenFromOthers(t *testing.T) {
	svc, _, gig := newGigFixture(t)
	ctx := context.Background()

	// Owner and admin see the pending gig; everyone else gets not-found,
	// indistinguishable from a gig that does not exist.
	_, err := svc.GetByID(ctx, employerActor, gig.ID)
	assert.NoError(t, err)
	_, err = svc.GetByID(ctx, adminActor, gig.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, seekerActor, gig.ID)
	assert.True(t, apperrors.IsNotFound(err))
	_, err = svc.GetByID(ctx, otherEmployer, gig.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGigService_ApproveRecordsListingFee(t *testing.T) {
	svc, repo, gig := newGigFixture(t)
	ctx := context.Background()

	approved, payment, err := svc.Approve(ctx, gig.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GigApproved, approved.Status)
	require.NotNil(t, payment)
	assert.Equal(t, DefaultGigListingFeeCents, payment.AmountCents)
	assert.Equal(t, gig.EmployerID, payment.EmployerID)
	assert.Equal(t, gig.ID, payment.ReferenceID)
	assert.Len(t, repo.payments, 1)

	// Approval is visible to everyone afterwards.
	_, err = svc.GetByID(ctx, seekerActor, gig.ID)
	assert.NoError(t, err)

	// Re-approving is not possible; no second fee lands in the ledger.
	_, _, err = svc.Approve(ctx, gig.ID)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Len(t, repo.payments, 1)
}

func TestGigService_CustomListingFee(t *testing.T) {
	repo := newFakeGigRepo()
	svc := NewGigService(GigServiceOptions{Gigs: repo, ListingFeeCents: 9900})
	ctx := context.Background()

	gig, err := svc.Create(ctx, employerActor, &model.CreateGigRequest{Title: "x", BudgetCents: 100})
	require.NoError(t, err)

	_, payment, err := svc.Approve(ctx, gig.ID)
	require.NoError(t, err)
	assert.Equal(t, 9900, payment.AmountCents)
}

func TestGigService_Reject(t *testing.T) {
	svc, repo, gig := newGigFixture(t)
	ctx := context.Background()

	rejected, err := svc.Reject(ctx, gig.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GigRejected, rejected.Status)
	assert.Empty(t, repo.payments)

	// A rejected gig cannot be approved afterwards.
	_, _, err = svc.Approve(ctx, gig.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGigService_ListPublicForcesApproved(t *testing.T) {
	svc, _, gig := newGigFixture(t)
	ctx := context.Background()

	// A caller asking for pending gigs still only sees approved ones.
	pending := model.GigPending
	gigs, err := svc.ListPublic(ctx, model.GigsListOptions{Status: &pending})
	require.NoError(t, err)
	assert.Empty(t, gigs)

	_, _, err = svc.Approve(ctx, gig.ID)
	require.NoError(t, err)

	gigs, err = svc.ListPublic(ctx, model.GigsListOptions{Status: &pending})
	require.NoError(t, err)
	assert.Len(t, gigs, 1)
}

func TestGigService_ListMineIncludesAllStates(t *testing.T) {
	svc, _, _ := newGigFixture(t)
	ctx := context.Background()

	second, err := svc.Create(ctx, employerActor, &model.CreateGigRequest{Title: "y", BudgetCents: 100})
	require.NoError(t, err)
	_, err = svc.Reject(ctx, second.ID)
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, employerActor, model.GigsListOptions{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	others, err := svc.ListMine(ctx, otherEmployer, model.GigsListOptions{})
	require.NoError(t, err)
	assert.Empty(t, others)
}
