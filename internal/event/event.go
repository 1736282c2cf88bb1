// Package event manages battle events: creation, the snapshot-diff processing
// lifecycle, and the analytics read models built from processed metrics.
//
// An event moves draft -> analyzing -> completed. Processing is repeatable;
// reprocessing a completed event replaces its metric rows. An event stuck in
// analyzing (crashed or failed processing) is returned to draft by the
// maintenance sweeper.
package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/warbandhq/warband/internal/model"
)

// querier covers the pool and transaction handles reads can run through.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// --------------------------------------------------------------------------
// Reads
// --------------------------------------------------------------------------

// Get returns one event by ID.
func Get(ctx context.Context, db querier, id uuid.UUID) (model.Event, error) {
	var e model.Event
	err := db.QueryRow(ctx, "event_by_id", id).Scan(
		&e.ID, &e.AllianceID, &e.Name, &e.Category, &e.Status, &e.Description,
		&e.BeforeUploadID, &e.AfterUploadID, &e.EventStart, &e.EventEnd,
		&e.LastError, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return e, fmt.Errorf("event %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return e, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// ListByAlliance returns an alliance's events, newest first.
func ListByAlliance(ctx context.Context, db querier, allianceID uuid.UUID) ([]model.Event, error) {
	return listEvents(ctx, db, "events_by_alliance", allianceID)
}

// RecentCompleted returns up to limit completed events of an alliance,
// ordered by event end (falling back to update time), newest first.
func RecentCompleted(ctx context.Context, db querier, allianceID uuid.UUID, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = 10
	}
	return listEvents(ctx, db, "recent_completed_events", allianceID, limit)
}

func listEvents(ctx context.Context, db querier, stmt string, args ...any) ([]model.Event, error) {
	rows, err := db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID, &e.AllianceID, &e.Name, &e.Category, &e.Status, &e.Description,
			&e.BeforeUploadID, &e.AfterUploadID, &e.EventStart, &e.EventEnd,
			&e.LastError, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetMetrics returns an event's member metric rows, ordered by member ID.
// The event must exist; a processed event with no members yields an empty
// slice, not nil.
func GetMetrics(ctx context.Context, db querier, eventID uuid.UUID) ([]model.EventMetric, error) {
	if _, err := Get(ctx, db, eventID); err != nil {
		return nil, err
	}
	return fetchMetrics(ctx, db, eventID)
}

func fetchMetrics(ctx context.Context, db querier, eventID uuid.UUID) ([]model.EventMetric, error) {
	rows, err := db.Query(ctx, "event_metrics_by_event", eventID)
	if err != nil {
		return nil, fmt.Errorf("get event metrics: %w", err)
	}
	defer rows.Close()

	metrics := []model.EventMetric{}
	for rows.Next() {
		var m model.EventMetric
		if err := rows.Scan(
			&m.ID, &m.EventID, &m.AllianceID, &m.MemberID, &m.MemberName,
			&m.StartSnapshotID, &m.EndSnapshotID,
			&m.ContributionDiff, &m.MeritDiff, &m.AssistDiff, &m.DonationDiff, &m.PowerDiff,
			&m.Participated, &m.Violated, &m.IsNewMember, &m.IsAbsent,
			&m.GroupName, &m.EndPower,
		); err != nil {
			return nil, fmt.Errorf("scan event metric: %w", err)
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// --------------------------------------------------------------------------
// Writes
// --------------------------------------------------------------------------

// Create stores a new event in draft status. The category must be one of the
// known values; upload references and timing may be attached now or later.
func Create(ctx context.Context, db execer, e model.Event) (*model.Event, error) {
	if !e.Category.Valid() {
		return nil, fmt.Errorf("create event: category %q: %w", e.Category, model.ErrUnknownCategory)
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = model.EventStatusDraft
	}

	_, err := db.Exec(ctx, `
		INSERT INTO events (
			id, alliance_id, name, category, status, description,
			before_upload_id, after_upload_id, event_start, event_end
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		e.ID, e.AllianceID, e.Name, e.Category, e.Status, e.Description,
		e.BeforeUploadID, e.AfterUploadID, e.EventStart, e.EventEnd,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return &e, nil
}

// Update rewrites an event's mutable fields: name, description, upload
// references, and timing. Status is owned by the processing lifecycle and is
// not touched here.
func Update(ctx context.Context, db execer, e model.Event) error {
	tag, err := db.Exec(ctx, `
		UPDATE events SET
			name = $2, description = $3, before_upload_id = $4, after_upload_id = $5,
			event_start = $6, event_end = $7, updated_at = NOW()
		WHERE id = $1`,
		e.ID, e.Name, e.Description, e.BeforeUploadID, e.AfterUploadID,
		e.EventStart, e.EventEnd,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", e.ID, model.ErrNotFound)
	}
	return nil
}

// Delete removes an event and, through FK cascade, its metric rows.
func Delete(ctx context.Context, db execer, id uuid.UUID) error {
	tag, err := db.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, model.ErrNotFound)
	}
	return nil
}
