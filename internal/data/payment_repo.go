package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hireline/hireline-api/internal/data/database"
	"github.com/hireline/hireline-api/internal/data/pgxutil"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
)

// PaymentRepo provides read access to the payments ledger. Entries are
// inserted by GigRepo.Approve inside the approval transaction; nothing
// updates or deletes ledger rows.
type PaymentRepo struct {
	DB *sql.DB
}

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(db *sql.DB) *PaymentRepo {
	return &PaymentRepo{DB: db}
}

// List retrieves ledger entries, newest first.
func (r *PaymentRepo) List(ctx context.Context, opts model.PaymentsListOptions) ([]*model.Payment, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns("id", "employer_id", "amount_cents", "currency", "purpose", "reference_id", "created_at"),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", "DESC"),
	}
	if opts.EmployerID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("employer_id", database.Equal, *opts.EmployerID),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("payments", queryOpts...))

	var rowsOut []model.Payment
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Payment])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	res := make([]*model.Payment, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// SumRevenue totals the ledger in cents.
func (r *PaymentRepo) SumRevenue(ctx context.Context) (int64, error) {
	var total int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM payments`).Scan(&total)
	}); err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return total, nil
}
