// Package maintenance runs periodic background tasks as Go tickers: stale
// event recovery, rebuild job pruning, and a season consistency check. All
// scheduled work is driven from Go since the API is already a persistent,
// long-running service.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warbandhq/warband/internal/jobs"
)

// Config controls maintenance task intervals and thresholds. A zero interval
// disables its task.
type Config struct {
	SweepInterval       time.Duration // stale analyzing events back to draft
	JobsGCInterval      time.Duration // prune finished rebuild jobs
	ConsistencyInterval time.Duration // seasons with uploads but no periods
	StatsInterval       time.Duration // ANALYZE on churn-heavy tables

	StaleEventAfter time.Duration // how long analyzing may last before reset
	JobRetention    time.Duration // how long finished job rows are kept
	JobAbandonAfter time.Duration // queued/running jobs older than this fail
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		SweepInterval:       10 * time.Minute,
		JobsGCInterval:      1 * time.Hour,
		ConsistencyInterval: 30 * time.Minute,
		StatsInterval:       6 * time.Hour,
		StaleEventAfter:     30 * time.Minute,
		JobRetention:        72 * time.Hour,
		JobAbandonAfter:     2 * time.Hour,
	}
}

// Start launches all configured maintenance tickers. A non-nil queue lets the
// consistency check enqueue repair rebuilds. Blocks until ctx is cancelled;
// intended to be called with `go`.
func Start(ctx context.Context, pool *pgxpool.Pool, queue *jobs.Queue, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"sweep", cfg.SweepInterval,
		"jobs_gc", cfg.JobsGCInterval,
		"consistency", cfg.ConsistencyInterval)

	tickers := make([]*time.Ticker, 0, 4)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if cfg.SweepInterval > 0 {
		t := time.NewTicker(cfg.SweepInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() {
			if _, err := SweepStaleEvents(ctx, pool, logger, cfg.StaleEventAfter); err != nil {
				logger.Warn("Stale event sweep failed", "error", err)
			}
		})
	}

	if cfg.JobsGCInterval > 0 {
		t := time.NewTicker(cfg.JobsGCInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() {
			if err := PruneJobs(ctx, pool, logger, cfg.JobRetention, cfg.JobAbandonAfter); err != nil {
				logger.Warn("Rebuild job pruning failed", "error", err)
			}
		})
	}

	if cfg.ConsistencyInterval > 0 {
		t := time.NewTicker(cfg.ConsistencyInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() {
			if _, err := CheckConsistency(ctx, pool, queue, logger); err != nil {
				logger.Warn("Season consistency check failed", "error", err)
			}
		})
	}

	if cfg.StatsInterval > 0 {
		t := time.NewTicker(cfg.StatsInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() {
			if err := RefreshStatistics(ctx, pool, logger); err != nil {
				logger.Warn("Statistics refresh failed", "error", err)
			}
		})
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// SweepStaleEvents returns analyzing events older than olderThan to draft so
// they can be retried. An event left analyzing means its processor crashed or
// failed mid-run; the recorded error is kept, and a timeout note is written
// where none exists.
func SweepStaleEvents(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	tag, err := pool.Exec(ctx, `
		UPDATE events SET status = 'draft',
			last_error = CASE WHEN last_error = '' THEN 'processing timed out' ELSE last_error END,
			updated_at = NOW()
		WHERE status = 'analyzing' AND updated_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("sweep stale events: %w", err)
	}
	n := tag.RowsAffected()
	if n > 0 {
		logger.Info("Reset stale analyzing events", "count", n)
	}
	return n, nil
}

// PruneJobs removes finished rebuild jobs past retention and fails abandoned
// queued/running rows left behind by a shutdown.
func PruneJobs(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger, retention, abandonAfter time.Duration) error {
	now := time.Now()

	abandoned, err := jobs.MarkAbandonedBefore(ctx, pool, now.Add(-abandonAfter))
	if err != nil {
		return err
	}
	if abandoned > 0 {
		logger.Warn("Failed abandoned rebuild jobs", "count", abandoned)
	}

	pruned, err := jobs.DeleteFinishedBefore(ctx, pool, now.Add(-retention))
	if err != nil {
		return err
	}
	if pruned > 0 {
		logger.Info("Pruned finished rebuild jobs", "count", pruned)
	}
	return nil
}

// CheckConsistency finds seasons that have uploads old enough to produce
// periods but none computed. Each one is logged; with a queue attached a
// repair rebuild is enqueued as well.
func CheckConsistency(ctx context.Context, pool *pgxpool.Pool, queue *jobs.Queue, logger *slog.Logger) ([]uuid.UUID, error) {
	rows, err := pool.Query(ctx, `
		SELECT s.id FROM seasons s
		WHERE EXISTS (
			SELECT 1 FROM uploads u
			WHERE u.season_id = s.id AND u.snapshot_date >= s.start_date + INTERVAL '1 day'
		)
		AND NOT EXISTS (SELECT 1 FROM periods p WHERE p.season_id = s.id)`)
	if err != nil {
		return nil, fmt.Errorf("check season consistency: %w", err)
	}
	defer rows.Close()

	var broken []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan season id: %w", err)
		}
		broken = append(broken, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range broken {
		logger.Error("Season has uploads but no computed periods", "season_id", id)
		if queue == nil {
			continue
		}
		jobID, err := queue.Enqueue(ctx, id)
		if err != nil {
			logger.Warn("Repair rebuild not enqueued", "season_id", id, "error", err)
			continue
		}
		logger.Info("Repair rebuild enqueued", "season_id", id, "job_id", jobID)
	}
	return broken, nil
}
