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

// TicketRepo provides database operations for support tickets.
type TicketRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTicketRepo creates a new TicketRepo with real time provider.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewTicketRepoWithTimeProvider creates a new TicketRepo with a custom time provider.
func NewTicketRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *TicketRepo {
	return &TicketRepo{DB: db, timeProvider: tp}
}

const (
	ticketColumnsSQL = `id, user_id, subject, body, status, closed_at, created_at, updated_at`

	ticketGetByIDQuery = `
		SELECT ` + ticketColumnsSQL + `
		FROM tickets
		WHERE id = $1`

	ticketInsertQuery = `
		INSERT INTO tickets (user_id, subject, body, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + ticketColumnsSQL

	ticketCloseQuery = `
		UPDATE tickets SET status = $1, closed_at = $2, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING ` + ticketColumnsSQL
)

// Create opens a new ticket for a user.
func (r *TicketRepo) Create(ctx context.Context, userID string, req *model.CreateTicketRequest) (*model.Ticket, error) {
	if req == nil {
		return nil, apperrors.Validation("create ticket request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Ticket
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, ticketInsertQuery,
			userID,
			strings.TrimSpace(req.Subject),
			req.Body,
			model.TicketOpen,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Ticket])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a ticket by ID.
func (r *TicketRepo) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	var out model.Ticket
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, ticketGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Ticket])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Ticket not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Close marks an open ticket closed and stamps closed_at. Closing an
// already-closed ticket is NotFound by the status guard.
func (r *TicketRepo) Close(ctx context.Context, id string) (*model.Ticket, error) {
	var out model.Ticket
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, ticketCloseQuery,
			model.TicketClosed, r.timeProvider.Now().UTC(), id, model.TicketOpen)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Ticket])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Ticket not found or already closed")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListWithOptions retrieves tickets with optional filters.
func (r *TicketRepo) ListWithOptions(ctx context.Context, opts model.TicketsListOptions) ([]*model.Ticket, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns("id", "user_id", "subject", "body", "status", "closed_at", "created_at", "updated_at"),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", "DESC"),
	}
	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}
	if opts.UserID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("user_id", database.Equal, *opts.UserID),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("tickets", queryOpts...))

	var rowsOut []model.Ticket
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Ticket])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	res := make([]*model.Ticket, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
