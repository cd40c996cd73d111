package data

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/hireline/hireline-api/internal/data/pgxutil"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
)

// StatsRepo aggregates the admin dashboard counters. All counts run on a
// single bridged connection per call.
type StatsRepo struct {
	DB *sql.DB
}

// NewStatsRepo creates a new StatsRepo.
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{DB: db}
}

// PlatformStats collects the per-role, per-status, and revenue counters
// in one pass.
func (r *StatsRepo) PlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	stats := &model.PlatformStats{
		UsersByRole:  map[string]int{},
		GigsByStatus: map[string]int{},
	}

	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		if err := collectGrouped(ctx, conn,
			`SELECT role, COUNT(*) FROM users GROUP BY role`, stats.UsersByRole); err != nil {
			return err
		}
		if err := collectGrouped(ctx, conn,
			`SELECT status, COUNT(*) FROM gigs GROUP BY status`, stats.GigsByStatus); err != nil {
			return err
		}

		jobCounts := map[string]int{}
		if err := collectGrouped(ctx, conn,
			`SELECT status, COUNT(*) FROM jobs GROUP BY status`, jobCounts); err != nil {
			return err
		}
		stats.OpenJobs = jobCounts[string(model.JobStatusOpen)]
		stats.ClosedJobs = jobCounts[string(model.JobStatusClosed)]

		if err := conn.QueryRow(ctx,
			`SELECT COUNT(*) FROM tickets WHERE status = $1`, model.TicketOpen,
		).Scan(&stats.OpenTickets); err != nil {
			return err
		}

		return conn.QueryRow(ctx,
			`SELECT COALESCE(SUM(amount_cents), 0) FROM payments`,
		).Scan(&stats.RevenueCents)
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return stats, nil
}

// collectGrouped scans a (key, count) result set into dst.
func collectGrouped(ctx context.Context, conn *pgx.Conn, query string, dst map[string]int) error {
	rows, err := conn.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dst[key] = count
	}
	return rows.Err()
}
