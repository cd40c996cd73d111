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
	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
)

// UserRepo provides database operations for users and their profiles.
// It implements ports.UserDirectory.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

const (
	userColumnsSQL = `id, external_id, email, first_name, last_name, role, active, verified, created_at, updated_at`

	userGetByExternalIDQuery = `
		SELECT ` + userColumnsSQL + `
		FROM users
		WHERE external_id = $1`

	userGetByIDQuery = `
		SELECT ` + userColumnsSQL + `
		FROM users
		WHERE id = $1`

	// Role is written at creation only; a returning user keeps whatever
	// role they already have regardless of what the caller passes.
	userUpsertQuery = `
		INSERT INTO users (external_id, email, first_name, last_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (external_id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + userColumnsSQL

	userCountByRoleQuery = `SELECT COUNT(*) FROM users WHERE role = $1`

	profileGetQuery = `
		SELECT user_id, headline, summary, skills, location, cv_url, updated_at
		FROM profiles
		WHERE user_id = $1`
)

// FindByExternalID looks a user up by the external identity subject.
func (r *UserRepo) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByExternalIDQuery, externalID)
}

// GetByID retrieves a user by internal id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByIDQuery, id)
}

// Upsert creates the user on first sign-in and refreshes name/email on
// subsequent sign-ins. The single-admin partial index rejects a second
// admin creation at the database level.
func (r *UserRepo) Upsert(ctx context.Context, params model.UpsertUserParams) (*model.User, error) {
	if err := params.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userUpsertQuery,
			strings.TrimSpace(params.ExternalID),
			strings.TrimSpace(params.Email),
			strings.TrimSpace(params.FirstName),
			strings.TrimSpace(params.LastName),
			params.Role,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// CountByRole counts users holding the given role.
func (r *UserRepo) CountByRole(ctx context.Context, role domainauth.Role) (int, error) {
	var count int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, userCountByRoleQuery, role).Scan(&count)
	}); err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return count, nil
}

// SetRole changes a user's role. Promoting a second user to admin fails
// with a conflict from the single-admin index.
func (r *UserRepo) SetRole(ctx context.Context, id string, role domainauth.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, apperrors.ValidationField("role", "role must be one of job_seeker, employer, admin")
	}
	return r.updateReturning(ctx, id, "role = $1", role)
}

// SetActive toggles whether the user may hold an authenticated session.
func (r *UserRepo) SetActive(ctx context.Context, id string, active bool) (*model.User, error) {
	return r.updateReturning(ctx, id, "active = $1", active)
}

// SetVerified marks an employer account as vetted by the admin.
func (r *UserRepo) SetVerified(ctx context.Context, id string, verified bool) (*model.User, error) {
	return r.updateReturning(ctx, id, "verified = $1", verified)
}

// ListWithOptions retrieves users with optional filters and sorting.
func (r *UserRepo) ListWithOptions(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(userColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("email", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.Role != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("role", database.Equal, *opts.Role),
		))
	}
	if opts.Active != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("active", database.Equal, *opts.Active),
		))
	}
	sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, map[string]string{
		"email":      "email",
		"created_at": "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("users", queryOpts...))

	var rowsOut []model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	res := make([]*model.User, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// GetProfile retrieves the profile belonging to a user. A user without a
// saved profile yields NotFound; callers decide whether that means "empty".
func (r *UserRepo) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var out model.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, profileGetQuery, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// UpsertProfile creates or updates the user's profile in one statement.
// Omitted fields keep their current value.
func (r *UserRepo) UpsertProfile(
	ctx context.Context,
	userID string,
	req model.UpdateProfileRequest,
) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}

	now := r.timeProvider.Now().UTC()
	var out model.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO profiles (user_id, headline, summary, skills, location, cv_url, updated_at)
			VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), $4, COALESCE($5, ''), $6, $7)
			ON CONFLICT (user_id) DO UPDATE SET
				headline = COALESCE($2, profiles.headline),
				summary = COALESCE($3, profiles.summary),
				skills = CASE WHEN $8 THEN $4 ELSE profiles.skills END,
				location = COALESCE($5, profiles.location),
				cv_url = COALESCE($6, profiles.cv_url),
				updated_at = $7
			RETURNING user_id, headline, summary, skills, location, cv_url, updated_at`,
			userID,
			req.Headline,
			req.Summary,
			skills,
			req.Location,
			req.CVURL,
			now,
			req.Skills != nil,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// --- helpers ---

func userColumns() []string {
	return []string{
		"id",
		"external_id",
		"email",
		"first_name",
		"last_name",
		"role",
		"active",
		"verified",
		"created_at",
		"updated_at",
	}
}

func (r *UserRepo) getByQuery(ctx context.Context, q string, args ...any) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &user, nil
}

// updateReturning applies a single SET expression keyed as $1 with the id as $2.
func (r *UserRepo) updateReturning(ctx context.Context, id, setExpr string, value any) (*model.User, error) {
	query := "UPDATE users SET " + setExpr + ", updated_at = $3 WHERE id = $2 RETURNING " + userColumnsSQL
	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, value, id, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// validateSortOptions validates and returns a safe sort column and direction.
func validateSortOptions(sort, dir string, allowed map[string]string) (string, string) {
	sortCol := "created_at"
	sortDir := "DESC"

	if sort != "" {
		if validSort, ok := allowed[strings.ToLower(strings.TrimSpace(sort))]; ok {
			sortCol = validSort
		}
	}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "asc":
		sortDir = "ASC"
	case "desc":
		sortDir = "DESC"
	}
	return sortCol, sortDir
}
