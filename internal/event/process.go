package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warbandhq/warband/internal/engine"
	"github.com/warbandhq/warband/internal/metrics"
	"github.com/warbandhq/warband/internal/model"
	"github.com/warbandhq/warband/internal/season"
	"github.com/warbandhq/warband/internal/snapshot"
)

// ProcessResult reports what one processing run produced.
type ProcessResult struct {
	EventID      uuid.UUID      `json:"event_id"`
	AllianceID   uuid.UUID      `json:"alliance_id"`
	Category     model.Category `json:"category"`
	Members      int            `json:"members"`
	Participants int            `json:"participants"`
	Absent       int            `json:"absent"`
	Violators    int            `json:"violators"`
	Duration     time.Duration  `json:"duration"`
}

// Summary returns a human-readable summary of the run.
func (r *ProcessResult) Summary() string {
	return fmt.Sprintf("event=%s category=%s members=%d participants=%d duration=%s",
		r.EventID, r.Category, r.Members, r.Participants, r.Duration.Round(time.Millisecond))
}

// Process computes an event's member metrics from its before and after
// uploads and stores them, replacing any metrics from an earlier run.
// Non-nil beforeID/afterID attach those uploads to the event; nil keeps the
// stored references (reprocessing path).
//
// Draft and completed events can be processed; an event already analyzing
// returns ErrInvalidState. The claim to analyzing is a conditional update, so
// two concurrent calls cannot both process the same event. On failure the
// event keeps analyzing status with the error recorded; the maintenance
// sweeper returns it to draft once stale.
func Process(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger, eventID uuid.UUID, beforeID, afterID *uuid.UUID) (*ProcessResult, error) {
	started := time.Now()

	e, err := Get(ctx, pool, eventID)
	if err != nil {
		return nil, err
	}
	if e.Status == model.EventStatusAnalyzing {
		return nil, fmt.Errorf("event %s is already being processed: %w", eventID, model.ErrInvalidState)
	}
	if beforeID != nil {
		e.BeforeUploadID = beforeID
	}
	if afterID != nil {
		e.AfterUploadID = afterID
	}
	if e.BeforeUploadID == nil || e.AfterUploadID == nil {
		return nil, fmt.Errorf("event %s is missing snapshot uploads: %w", eventID, model.ErrInvalidState)
	}

	beforeUp, err := season.GetUpload(ctx, pool, *e.BeforeUploadID)
	if err != nil {
		return nil, err
	}
	afterUp, err := season.GetUpload(ctx, pool, *e.AfterUploadID)
	if err != nil {
		return nil, err
	}
	if !beforeUp.SnapshotDate.Before(afterUp.SnapshotDate) {
		return nil, fmt.Errorf("event %s: before upload must predate after upload: %w", eventID, model.ErrInvalidState)
	}

	// Claim the event; a concurrent processor loses here.
	tag, err := pool.Exec(ctx, `
		UPDATE events SET status = 'analyzing', before_upload_id = $2, after_upload_id = $3,
			last_error = '', updated_at = NOW()
		WHERE id = $1 AND status IN ('draft', 'completed')`,
		eventID, e.BeforeUploadID, e.AfterUploadID)
	if err != nil {
		return nil, fmt.Errorf("claim event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("event %s is already being processed: %w", eventID, model.ErrInvalidState)
	}

	res, err := compute(ctx, pool, e, beforeUp, afterUp)
	if err != nil {
		metrics.EventsProcessed.WithLabelValues(string(e.Category), "error").Inc()
		recordFailure(ctx, pool, logger, eventID, err)
		return nil, err
	}
	metrics.EventsProcessed.WithLabelValues(string(e.Category), "ok").Inc()

	res.Duration = time.Since(started)
	logger.Info("Event processed",
		"event_id", eventID,
		"category", e.Category,
		"members", res.Members,
		"participants", res.Participants,
		"duration", res.Duration.Round(time.Millisecond),
	)
	return res, nil
}

// compute diffs the two snapshot sets and writes the metric rows and the
// completed status in one transaction.
func compute(ctx context.Context, pool *pgxpool.Pool, e model.Event, beforeUp, afterUp model.Upload) (*ProcessResult, error) {
	beforeSnaps, err := snapshot.GetByUpload(ctx, pool, beforeUp.ID)
	if err != nil {
		return nil, err
	}
	afterSnaps, err := snapshot.GetByUpload(ctx, pool, afterUp.ID)
	if err != nil {
		return nil, err
	}

	metrics := engine.BuildEventMetrics(e.Category, e.AllianceID, beforeSnaps, afterSnaps)

	// Event timing defaults to the snapshot window when not set explicitly.
	eventStart := e.EventStart
	if eventStart == nil {
		eventStart = &beforeUp.SnapshotDate
	}
	eventEnd := e.EventEnd
	if eventEnd == nil {
		eventEnd = &afterUp.SnapshotDate
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin metrics write: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM event_metrics WHERE event_id = $1", e.ID); err != nil {
		return nil, fmt.Errorf("clear event metrics: %w", err)
	}

	res := &ProcessResult{EventID: e.ID, AllianceID: e.AllianceID, Category: e.Category, Members: len(metrics)}
	batch := &pgx.Batch{}
	for _, m := range metrics {
		batch.Queue(`
			INSERT INTO event_metrics (
				id, event_id, alliance_id, member_id, member_name,
				start_snapshot_id, end_snapshot_id,
				contribution_diff, merit_diff, assist_diff, donation_diff, power_diff,
				participated, violated, is_new_member, is_absent, group_name, end_power
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
			uuid.New(), e.ID, m.AllianceID, m.MemberID, m.MemberName,
			m.StartSnapshotID, m.EndSnapshotID,
			m.ContributionDiff, m.MeritDiff, m.AssistDiff, m.DonationDiff, m.PowerDiff,
			m.Participated, m.Violated, m.IsNewMember, m.IsAbsent, m.GroupName, m.EndPower,
		)
		if m.Participated {
			res.Participants++
		}
		if m.IsAbsent {
			res.Absent++
		}
		if m.Violated {
			res.Violators++
		}
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("insert event metrics: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE events SET status = 'completed', event_start = $2, event_end = $3,
			last_error = '', updated_at = NOW()
		WHERE id = $1`,
		e.ID, eventStart, eventEnd,
	); err != nil {
		return nil, fmt.Errorf("complete event: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit event metrics: %w", err)
	}
	return res, nil
}

// recordFailure stores the processing error on the event. It runs even when
// the triggering context is already canceled.
func recordFailure(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger, eventID uuid.UUID, cause error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx,
		"UPDATE events SET last_error = $2, updated_at = NOW() WHERE id = $1",
		eventID, cause.Error(),
	); err != nil {
		logger.Error("Recording event failure failed", "event_id", eventID, "error", err)
	}
	logger.Error("Event processing failed", "event_id", eventID, "error", cause)
}
