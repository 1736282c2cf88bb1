// Package season owns the season-scoped persistence: uploads, computed
// periods, and their metric rows, plus the full-rebuild coordinator that
// keeps them consistent with the upload set.
//
// Rebuilds run inside a single transaction guarded by a per-season advisory
// lock, so concurrent rebuilds of the same season serialize and a crash can
// never leave the season half-built.
package season

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/warbandhq/warband/internal/model"
)

// querier covers the pool and transaction handles reads can run through.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// --------------------------------------------------------------------------
// Season reads
// --------------------------------------------------------------------------

// GetSeason returns one season by ID.
func GetSeason(ctx context.Context, db querier, id uuid.UUID) (model.Season, error) {
	var s model.Season
	err := db.QueryRow(ctx, "season_by_id", id).Scan(
		&s.ID, &s.AllianceID, &s.Name, &s.StartDate, &s.EndDate, &s.IsCurrent, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Season{}, fmt.Errorf("season %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Season{}, fmt.Errorf("get season: %w", err)
	}
	return s, nil
}

// ListByAlliance returns an alliance's seasons, newest first.
func ListByAlliance(ctx context.Context, db querier, allianceID uuid.UUID) ([]model.Season, error) {
	rows, err := db.Query(ctx, "seasons_by_alliance", allianceID)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	defer rows.Close()

	var seasons []model.Season
	for rows.Next() {
		var s model.Season
		if err := rows.Scan(&s.ID, &s.AllianceID, &s.Name, &s.StartDate, &s.EndDate, &s.IsCurrent, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

// --------------------------------------------------------------------------
// Upload reads
// --------------------------------------------------------------------------

// GetUpload returns one upload by ID.
func GetUpload(ctx context.Context, db querier, id uuid.UUID) (model.Upload, error) {
	var u model.Upload
	err := db.QueryRow(ctx, "upload_by_id", id).Scan(
		&u.ID, &u.SeasonID, &u.AllianceID, &u.SnapshotDate, &u.Label, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Upload{}, fmt.Errorf("upload %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Upload{}, fmt.Errorf("get upload: %w", err)
	}
	return u, nil
}

// ListUploads returns a season's uploads ordered by snapshot date.
func ListUploads(ctx context.Context, db querier, seasonID uuid.UUID) ([]model.Upload, error) {
	rows, err := db.Query(ctx, "uploads_by_season", seasonID)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var uploads []model.Upload
	for rows.Next() {
		var u model.Upload
		if err := rows.Scan(&u.ID, &u.SeasonID, &u.AllianceID, &u.SnapshotDate, &u.Label, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}

// --------------------------------------------------------------------------
// Period reads
// --------------------------------------------------------------------------

// GetPeriod returns one period by ID.
func GetPeriod(ctx context.Context, db querier, id uuid.UUID) (model.Period, error) {
	var p model.Period
	err := db.QueryRow(ctx, "period_by_id", id).Scan(
		&p.ID, &p.SeasonID, &p.AllianceID, &p.StartUploadID, &p.EndUploadID,
		&p.StartDate, &p.EndDate, &p.Days, &p.PeriodNumber, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Period{}, fmt.Errorf("period %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Period{}, fmt.Errorf("get period: %w", err)
	}
	return p, nil
}

// ListPeriods returns a season's periods in period-number order.
func ListPeriods(ctx context.Context, db querier, seasonID uuid.UUID) ([]model.Period, error) {
	rows, err := db.Query(ctx, "periods_by_season", seasonID)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()

	var periods []model.Period
	for rows.Next() {
		var p model.Period
		if err := rows.Scan(
			&p.ID, &p.SeasonID, &p.AllianceID, &p.StartUploadID, &p.EndUploadID,
			&p.StartDate, &p.EndDate, &p.Days, &p.PeriodNumber, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// GetPeriodMetrics returns a period's metric rows ordered by end rank. The
// period must exist; an empty slice with no error means it has no members.
func GetPeriodMetrics(ctx context.Context, db querier, periodID uuid.UUID) ([]model.PeriodMetric, error) {
	if _, err := GetPeriod(ctx, db, periodID); err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, "period_metrics_by_period", periodID)
	if err != nil {
		return nil, fmt.Errorf("list period metrics: %w", err)
	}
	defer rows.Close()

	metrics := []model.PeriodMetric{}
	for rows.Next() {
		m, err := scanPeriodMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

func scanPeriodMetric(rows pgx.Rows) (model.PeriodMetric, error) {
	var m model.PeriodMetric
	err := rows.Scan(
		&m.ID, &m.PeriodID, &m.AllianceID, &m.MemberID, &m.MemberName,
		&m.StartSnapshotID, &m.EndSnapshotID,
		&m.ContributionDiff, &m.MeritDiff, &m.AssistDiff, &m.DonationDiff, &m.PowerDiff,
		&m.DailyContribution, &m.DailyMerit, &m.DailyAssist, &m.DailyDonation,
		&m.StartRank, &m.EndRank, &m.RankChange,
		&m.EndPower, &m.EndState, &m.EndGroup, &m.IsNewMember,
	)
	if err != nil {
		return model.PeriodMetric{}, fmt.Errorf("scan period metric: %w", err)
	}
	return m, nil
}

// --------------------------------------------------------------------------
// Rebuild result
// --------------------------------------------------------------------------

// RebuildResult tracks counts and errors from one season rebuild.
type RebuildResult struct {
	SeasonID uuid.UUID
	Periods  int
	Metrics  int
	Duration time.Duration
	Errors   []string
}

// AddErrorf records a formatted error message.
func (r *RebuildResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the rebuild.
func (r *RebuildResult) Summary() string {
	return fmt.Sprintf("season=%s periods=%d metrics=%d duration=%s errors=%d",
		r.SeasonID, r.Periods, r.Metrics, r.Duration.Round(time.Millisecond), len(r.Errors))
}
