package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hireline/hireline-api/internal/data/database"
	"github.com/hireline/hireline-api/internal/data/pgxutil"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
)

// JobRepo provides database operations for job postings.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a new JobRepo with real time provider.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewJobRepoWithTimeProvider creates a new JobRepo with a custom time provider (useful for tests).
func NewJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobRepo {
	return &JobRepo{DB: db, timeProvider: tp}
}

const (
	jobColumnsSQL = `id, employer_id, title, company, description, location, salary_min, salary_max, employment_type, status, created_at, updated_at`

	jobGetByIDQuery = `
		SELECT ` + jobColumnsSQL + `
		FROM jobs
		WHERE id = $1`

	jobInsertQuery = `
		INSERT INTO jobs (employer_id, title, company, description, location, salary_min, salary_max, employment_type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING ` + jobColumnsSQL
)

// Create inserts a new job posting in the open state.
func (r *JobRepo) Create(ctx context.Context, employerID string, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, apperrors.Validation("create job request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, jobInsertQuery,
			employerID,
			strings.TrimSpace(req.Title),
			strings.TrimSpace(req.Company),
			req.Description,
			strings.TrimSpace(req.Location),
			req.SalaryMin,
			req.SalaryMax,
			req.EmploymentType,
			model.JobStatusOpen,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a job by ID.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, jobGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		job, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Job not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &job, nil
}

// ListWithOptions retrieves jobs with optional filters and sorting.
func (r *JobRepo) ListWithOptions(ctx context.Context, opts model.JobsListOptions) ([]*model.Job, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(jobColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("title", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.Location != nil && strings.TrimSpace(*opts.Location) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("location", database.ILike, "%"+strings.TrimSpace(*opts.Location)+"%"),
		))
	}
	if opts.EmploymentType != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("employment_type", database.Equal, *opts.EmploymentType),
		))
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
	sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, map[string]string{
		"title":      "title",
		"created_at": "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("jobs", queryOpts...))

	var rowsOut []model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	res := make([]*model.Job, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a job posting.
func (r *JobRepo) Update(ctx context.Context, id string, req model.UpdateJobRequest) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(req)
		if setClause == "" {
			rows, err := conn.Query(ctx, jobGetByIDQuery, id)
			if err != nil {
				return err
			}
			defer rows.Close()
			var e error
			out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
			return e
		}
		args = append(args, id)
		query := "UPDATE jobs SET " + setClause +
			" WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + jobColumnsSQL
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Job not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete deletes a job posting by ID.
func (r *JobRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return rows > 0, nil
}

// --- helpers ---

func jobColumns() []string {
	return []string{
		"id",
		"employer_id",
		"title",
		"company",
		"description",
		"location",
		"salary_min",
		"salary_max",
		"employment_type",
		"status",
		"created_at",
		"updated_at",
	}
}

// buildUpdateClause builds the SQL SET clause and args for updating a job.
func (r *JobRepo) buildUpdateClause(req model.UpdateJobRequest) (string, []any) {
	setParts := make([]string, 0, 8)
	args := make([]any, 0, 9)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Company != nil {
		setParts = append(setParts, fmt.Sprintf("company = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Company))
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *req.Description)
	}
	if req.Location != nil {
		setParts = append(setParts, fmt.Sprintf("location = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Location))
	}
	if req.SalaryMin != nil {
		setParts = append(setParts, fmt.Sprintf("salary_min = $%d", nextIdx()))
		args = append(args, *req.SalaryMin)
	}
	if req.SalaryMax != nil {
		setParts = append(setParts, fmt.Sprintf("salary_max = $%d", nextIdx()))
		args = append(args, *req.SalaryMax)
	}
	if req.EmploymentType != nil {
		setParts = append(setParts, fmt.Sprintf("employment_type = $%d", nextIdx()))
		args = append(args, *req.EmploymentType)
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}

	if len(setParts) == 0 {
		return "", nil
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}
