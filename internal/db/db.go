// Package db provides a pgxpool-based connection pool with prepared statement
// registration, schema migration, and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warbandhq/warband/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers the hot read paths the API and ops
// layers share. Writes and transactional work use inline SQL at the call
// site.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Seasons and uploads
		"season_by_id": "SELECT id, alliance_id, name, start_date, end_date, is_current, created_at FROM seasons WHERE id = $1",
		"seasons_by_alliance": "SELECT id, alliance_id, name, start_date, end_date, is_current, created_at FROM seasons " +
			"WHERE alliance_id = $1 ORDER BY start_date DESC",
		"upload_by_id": "SELECT id, season_id, alliance_id, snapshot_date, label, created_at FROM uploads WHERE id = $1",
		"uploads_by_season": "SELECT id, season_id, alliance_id, snapshot_date, label, created_at FROM uploads " +
			"WHERE season_id = $1 ORDER BY snapshot_date, created_at",

		// Snapshots
		"snapshots_by_upload": "SELECT id, upload_id, alliance_id, member_id, member_name, contribution_rank, " +
			"total_contribution, total_merit, total_assist, total_donation, power_value, state, group_name, created_at " +
			"FROM member_snapshots WHERE upload_id = $1 ORDER BY contribution_rank, member_id",

		// Periods
		"period_by_id": "SELECT id, season_id, alliance_id, start_upload_id, end_upload_id, start_date, end_date, " +
			"days, period_number, created_at FROM periods WHERE id = $1",
		"periods_by_season": "SELECT id, season_id, alliance_id, start_upload_id, end_upload_id, start_date, end_date, " +
			"days, period_number, created_at FROM periods WHERE season_id = $1 ORDER BY period_number",
		"period_metrics_by_period": "SELECT id, period_id, alliance_id, member_id, member_name, start_snapshot_id, " +
			"end_snapshot_id, contribution_diff, merit_diff, assist_diff, donation_diff, power_diff, " +
			"daily_contribution, daily_merit, daily_assist, daily_donation, start_rank, end_rank, rank_change, " +
			"end_power, end_state, end_group, is_new_member FROM period_metrics WHERE period_id = $1 ORDER BY end_rank, member_id",

		// Analytics: one season's metric rows joined with their periods
		"season_member_metrics": "SELECT p.period_number, p.days, p.start_date, p.end_date, " +
			"pm.id, pm.period_id, pm.alliance_id, pm.member_id, pm.member_name, pm.start_snapshot_id, " +
			"pm.end_snapshot_id, pm.contribution_diff, pm.merit_diff, pm.assist_diff, pm.donation_diff, pm.power_diff, " +
			"pm.daily_contribution, pm.daily_merit, pm.daily_assist, pm.daily_donation, pm.start_rank, pm.end_rank, " +
			"pm.rank_change, pm.end_power, pm.end_state, pm.end_group, pm.is_new_member " +
			"FROM period_metrics pm JOIN periods p ON p.id = pm.period_id " +
			"WHERE p.season_id = $1 ORDER BY p.period_number, pm.end_rank, pm.member_id",

		// Events
		"event_by_id": "SELECT id, alliance_id, name, category, status, description, before_upload_id, after_upload_id, " +
			"event_start, event_end, last_error, created_at, updated_at FROM events WHERE id = $1",
		"events_by_alliance": "SELECT id, alliance_id, name, category, status, description, before_upload_id, after_upload_id, " +
			"event_start, event_end, last_error, created_at, updated_at FROM events WHERE alliance_id = $1 ORDER BY created_at DESC",
		"recent_completed_events": "SELECT id, alliance_id, name, category, status, description, before_upload_id, after_upload_id, " +
			"event_start, event_end, last_error, created_at, updated_at FROM events " +
			"WHERE alliance_id = $1 AND status = 'completed' ORDER BY COALESCE(event_end, updated_at) DESC LIMIT $2",
		"event_metrics_by_event": "SELECT id, event_id, alliance_id, member_id, member_name, start_snapshot_id, " +
			"end_snapshot_id, contribution_diff, merit_diff, assist_diff, donation_diff, power_diff, participated, " +
			"violated, is_new_member, is_absent, group_name, end_power FROM event_metrics WHERE event_id = $1 " +
			"ORDER BY member_id",
		"event_stats_by_alliance": "SELECT event_id, COUNT(*), COUNT(*) FILTER (WHERE participated), " +
			"COUNT(*) FILTER (WHERE violated) FROM event_metrics WHERE alliance_id = $1 GROUP BY event_id",

		// Rebuild jobs
		"job_by_id": "SELECT id, season_id, status, periods_built, metrics_built, error, enqueued_at, started_at, finished_at " +
			"FROM rebuild_jobs WHERE id = $1",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
