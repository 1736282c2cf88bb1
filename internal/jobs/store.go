package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/warbandhq/warband/internal/model"
)

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Status returns one rebuild job by ID.
func Status(ctx context.Context, db querier, jobID uuid.UUID) (model.RebuildJob, error) {
	var j model.RebuildJob
	err := db.QueryRow(ctx, "job_by_id", jobID).Scan(
		&j.ID, &j.SeasonID, &j.Status, &j.PeriodsBuilt, &j.MetricsBuilt,
		&j.Error, &j.EnqueuedAt, &j.StartedAt, &j.FinishedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return j, fmt.Errorf("rebuild job %s: %w", jobID, model.ErrNotFound)
	}
	if err != nil {
		return j, fmt.Errorf("get rebuild job: %w", err)
	}
	return j, nil
}

func insertJob(ctx context.Context, db execer, j model.RebuildJob) error {
	_, err := db.Exec(ctx,
		"INSERT INTO rebuild_jobs (id, season_id, status) VALUES ($1, $2, $3)",
		j.ID, j.SeasonID, j.Status,
	)
	if err != nil {
		return fmt.Errorf("insert rebuild job: %w", err)
	}
	return nil
}

func markRunning(ctx context.Context, db execer, jobID uuid.UUID) error {
	_, err := db.Exec(ctx,
		"UPDATE rebuild_jobs SET status = 'running', started_at = NOW() WHERE id = $1",
		jobID,
	)
	return err
}

func markDone(ctx context.Context, db execer, jobID uuid.UUID, periods, metrics int) error {
	_, err := db.Exec(ctx, `
		UPDATE rebuild_jobs SET status = 'done', periods_built = $2, metrics_built = $3,
			finished_at = NOW()
		WHERE id = $1`,
		jobID, periods, metrics,
	)
	return err
}

func markFailed(ctx context.Context, db execer, jobID uuid.UUID, cause string) error {
	_, err := db.Exec(ctx, `
		UPDATE rebuild_jobs SET status = 'failed', error = $2, finished_at = NOW()
		WHERE id = $1`,
		jobID, cause,
	)
	return err
}

// DeleteFinishedBefore prunes terminal jobs older than the cutoff and returns
// how many rows went away.
func DeleteFinishedBefore(ctx context.Context, db execer, cutoff time.Time) (int64, error) {
	tag, err := db.Exec(ctx,
		"DELETE FROM rebuild_jobs WHERE status IN ('done', 'failed') AND finished_at < $1",
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("prune rebuild jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkAbandonedBefore fails queued or running jobs enqueued before the
// cutoff. Such rows are left behind by a process that shut down with work
// still in its queue.
func MarkAbandonedBefore(ctx context.Context, db execer, cutoff time.Time) (int64, error) {
	tag, err := db.Exec(ctx, `
		UPDATE rebuild_jobs SET status = 'failed', error = 'abandoned', finished_at = NOW()
		WHERE status IN ('queued', 'running') AND enqueued_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("mark abandoned rebuild jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}
