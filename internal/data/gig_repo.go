package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hireline/hireline-api/internal/data/database"
	"github.com/hireline/hireline-api/internal/data/pgxutil"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
)

// GigRepo provides database operations for gigs and their moderation.
type GigRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewGigRepo creates a new GigRepo with real time provider.
func NewGigRepo(db *sql.DB) *GigRepo {
	return &GigRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewGigRepoWithTimeProvider creates a new GigRepo with a custom time provider (useful for tests).
func NewGigRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *GigRepo {
	return &GigRepo{DB: db, timeProvider: tp}
}

const (
	gigColumnsSQL = `id, employer_id, title, description, budget_cents, currency, status, created_at, updated_at`

	gigGetByIDQuery = `
		SELECT ` + gigColumnsSQL + `
		FROM gigs
		WHERE id = $1`

	gigInsertQuery = `
		INSERT INTO gigs (employer_id, title, description, budget_cents, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + gigColumnsSQL

	// Approval only moves pending gigs; re-approving is a no-op caught by
	// the WHERE clause and surfaced as NotFound-for-pending.
	gigApproveQuery = `
		UPDATE gigs SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING ` + gigColumnsSQL

	gigPaymentInsertQuery = `
		INSERT INTO payments (employer_id, amount_cents, currency, purpose, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employer_id, amount_cents, currency, purpose, reference_id, created_at`
)

// Create inserts a new gig in the pending state.
func (r *GigRepo) Create(ctx context.Context, employerID string, req *model.CreateGigRequest) (*model.Gig, error) {
	if req == nil {
		return nil, apperrors.Validation("create gig request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Gig
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, gigInsertQuery,
			employerID,
			strings.TrimSpace(req.Title),
			req.Description,
			req.BudgetCents,
			req.Currency,
			model.GigPending,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Gig])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a gig by ID.
func (r *GigRepo) GetByID(ctx context.Context, id string) (*model.Gig, error) {
	var out model.Gig
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, gigGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Gig])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Gig not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Approve transitions a pending gig to approved and records the listing
// fee in the payments ledger within the same transaction. Either both
// rows land or neither does.
func (r *GigRepo) Approve(ctx context.Context, id string, feeCents int) (*model.Gig, *model.Payment, error) {
	if feeCents < 0 {
		return nil, nil, apperrors.Validation("fee cannot be negative")
	}

	now := r.timeProvider.Now().UTC()
	var gig model.Gig
	var payment model.Payment
	err := pgxutil.WithPgxTx(ctx, r.DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, gigApproveQuery, model.GigApproved, now, id, model.GigPending)
		if err != nil {
			return err
		}
		gig, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Gig])
		if err != nil {
			return err
		}

		payRows, err := tx.Query(ctx, gigPaymentInsertQuery,
			gig.EmployerID,
			feeCents,
			gig.Currency,
			model.PaymentPurposeGigListing,
			gig.ID,
			now,
		)
		if err != nil {
			return err
		}
		payment, err = pgx.CollectOneRow(payRows, pgx.RowToStructByName[model.Payment])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NotFound("Gig not found or not pending")
		}
		return nil, nil, apperrors.MapDBError(err)
	}
	return &gig, &payment, nil
}

// Reject transitions a pending gig to rejected. No payment is recorded.
func (r *GigRepo) Reject(ctx context.Context, id string) (*model.Gig, error) {
	var out model.Gig
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, gigApproveQuery,
			model.GigRejected, r.timeProvider.Now().UTC(), id, model.GigPending)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Gig])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Gig not found or not pending")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListWithOptions retrieves gigs with optional filters.
func (r *GigRepo) ListWithOptions(ctx context.Context, opts model.GigsListOptions) ([]*model.Gig, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(
			"id", "employer_id", "title", "description",
			"budget_cents", "currency", "status", "created_at", "updated_at",
		),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", "DESC"),
	}
	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}
	if opts.EmployerID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("employer_id", database.Equal, *opts.EmployerID),
		))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("title", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("gigs", queryOpts...))

	var rowsOut []model.Gig
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Gig])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list gigs: %w", err)
	}

	res := make([]*model.Gig, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
