package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hireline/hireline-api/internal/data/database"
	"github.com/hireline/hireline-api/internal/data/pgxutil"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
)

// ApplicationRepo provides database operations for job applications.
type ApplicationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewApplicationRepo creates a new ApplicationRepo with real time provider.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewApplicationRepoWithTimeProvider creates a new ApplicationRepo with a custom time provider.
func NewApplicationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: tp}
}

const (
	applicationColumnsSQL = `id, job_id, user_id, cover_note, status, created_at, updated_at`

	applicationGetByIDQuery = `
		SELECT ` + applicationColumnsSQL + `
		FROM applications
		WHERE id = $1`

	// The unique (job_id, user_id) constraint turns a duplicate apply
	// into a conflict instead of a second row.
	applicationInsertQuery = `
		INSERT INTO applications (job_id, user_id, cover_note, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + applicationColumnsSQL

	applicationSetStatusQuery = `
		UPDATE applications SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + applicationColumnsSQL
)

// Create inserts a new application in the submitted state.
func (r *ApplicationRepo) Create(
	ctx context.Context,
	userID string,
	req *model.CreateApplicationRequest,
) (*model.Application, error) {
	if req == nil {
		return nil, apperrors.Validation("create application request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, applicationInsertQuery,
			req.JobID,
			userID,
			req.CoverNote,
			model.ApplicationSubmitted,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves an application by ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var out model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, applicationGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Application not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// SetStatus moves an application through the review workflow.
func (r *ApplicationRepo) SetStatus(
	ctx context.Context,
	id string,
	status model.ApplicationStatus,
) (*model.Application, error) {
	if !status.Valid() {
		return nil, apperrors.ValidationField("status", "status must be one of submitted, reviewed, accepted, rejected")
	}

	var out model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, applicationSetStatusQuery, status, r.timeProvider.Now().UTC(), id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Application not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListWithOptions retrieves applications with optional filters.
func (r *ApplicationRepo) ListWithOptions(
	ctx context.Context,
	opts model.ApplicationsListOptions,
) ([]*model.Application, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns("id", "job_id", "user_id", "cover_note", "status", "created_at", "updated_at"),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", "DESC"),
	}
	if opts.JobID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("job_id", database.Equal, *opts.JobID),
		))
	}
	if opts.UserID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("user_id", database.Equal, *opts.UserID),
		))
	}
	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("applications", queryOpts...))

	var rowsOut []model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	res := make([]*model.Application, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
