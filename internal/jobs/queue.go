// Package jobs runs season rebuilds in the background. A single dispatcher
// goroutine drains a bounded queue, so rebuilds never run concurrently within
// one process; the advisory lock in season.Rebuild covers other processes.
// Enqueueing a season that is already waiting returns the pending job instead
// of queueing it twice, so a burst of uploads collapses into one rebuild.
// Every job is persisted in rebuild_jobs for status polling.
package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warbandhq/warband/internal/metrics"
	"github.com/warbandhq/warband/internal/model"
	"github.com/warbandhq/warband/internal/season"
)

// ErrQueueFull is returned by Enqueue when the queue has no room left.
var ErrQueueFull = errors.New("rebuild queue is full")

type item struct {
	jobID    uuid.UUID
	seasonID uuid.UUID
}

// Queue schedules and executes season rebuilds.
type Queue struct {
	pool   *pgxpool.Pool
	logger *slog.Logger

	mu     sync.Mutex
	queued map[uuid.UUID]uuid.UUID // season ID -> job ID waiting in ch
	ch     chan item
}

// NewQueue creates a rebuild queue holding at most size pending seasons.
func NewQueue(pool *pgxpool.Pool, logger *slog.Logger, size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{
		pool:   pool,
		logger: logger,
		queued: make(map[uuid.UUID]uuid.UUID),
		ch:     make(chan item, size),
	}
}

// Enqueue schedules a rebuild and returns the job ID to poll. A season
// already waiting in the queue coalesces onto the pending job. A season whose
// rebuild is currently running gets a fresh job, so uploads registered
// mid-rebuild are picked up by the follow-up run.
func (q *Queue) Enqueue(ctx context.Context, seasonID uuid.UUID) (uuid.UUID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if jobID, ok := q.queued[seasonID]; ok {
		return jobID, nil
	}
	// Only Enqueue pushes, and it holds the lock, so a capacity check here
	// guarantees the send below cannot block.
	if len(q.ch) == cap(q.ch) {
		return uuid.Nil, ErrQueueFull
	}

	job := model.RebuildJob{ID: uuid.New(), SeasonID: seasonID, Status: model.JobStatusQueued}
	if err := insertJob(ctx, q.pool, job); err != nil {
		return uuid.Nil, err
	}

	q.ch <- item{jobID: job.ID, seasonID: seasonID}
	q.queued[seasonID] = job.ID
	metrics.QueueDepth.Inc()
	return job.ID, nil
}

// Start runs the dispatcher until ctx is cancelled. Blocks; intended to be
// called with `go`.
func (q *Queue) Start(ctx context.Context) {
	q.logger.Info("Rebuild queue started", "capacity", cap(q.ch))
	for {
		select {
		case <-ctx.Done():
			q.logger.Info("Rebuild queue stopped")
			return
		case it := <-q.ch:
			q.run(ctx, it)
		}
	}
}

func (q *Queue) run(ctx context.Context, it item) {
	// From here on a new Enqueue for this season creates a fresh job rather
	// than coalescing onto one that is already executing.
	q.mu.Lock()
	delete(q.queued, it.seasonID)
	q.mu.Unlock()
	metrics.QueueDepth.Dec()

	if err := markRunning(ctx, q.pool, it.jobID); err != nil {
		q.logger.Error("Updating rebuild job failed", "job_id", it.jobID, "error", err)
	}

	res, err := season.Rebuild(ctx, q.pool, q.logger, it.seasonID)
	if err != nil {
		q.logger.Error("Background rebuild failed",
			"job_id", it.jobID, "season_id", it.seasonID, "error", err)
		if uerr := markFailed(context.WithoutCancel(ctx), q.pool, it.jobID, err.Error()); uerr != nil {
			q.logger.Error("Updating rebuild job failed", "job_id", it.jobID, "error", uerr)
		}
		return
	}

	if err := markDone(ctx, q.pool, it.jobID, res.Periods, res.Metrics); err != nil {
		q.logger.Error("Updating rebuild job failed", "job_id", it.jobID, "error", err)
	}
}
