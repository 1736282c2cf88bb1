// Package snapshot stores and retrieves the immutable member rows carried by
// each upload.
package snapshot

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/warbandhq/warband/internal/model"
)

// querier covers the pool and transaction handles rows can be read through.
// Rebuilds read snapshots inside their transaction so the advisory lock
// covers the whole read-compute-write cycle.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// execer covers the pool and transaction handles rows can be written through.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// GetByUpload returns an upload's member rows ordered by contribution rank.
func GetByUpload(ctx context.Context, db querier, uploadID uuid.UUID) ([]model.MemberSnapshot, error) {
	rows, err := db.Query(ctx, "snapshots_by_upload", uploadID)
	if err != nil {
		return nil, fmt.Errorf("get snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []model.MemberSnapshot
	for rows.Next() {
		var s model.MemberSnapshot
		if err := rows.Scan(
			&s.ID, &s.UploadID, &s.AllianceID, &s.MemberID, &s.MemberName,
			&s.ContributionRank, &s.TotalContribution, &s.TotalMerit, &s.TotalAssist,
			&s.TotalDonation, &s.PowerValue, &s.State, &s.GroupName, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

// InsertBatch persists one upload's member rows. Rows without an ID get one
// assigned. Returns the number inserted.
func InsertBatch(ctx context.Context, db execer, rows []model.MemberSnapshot) (int, error) {
	inserted := 0
	for _, s := range rows {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		_, err := db.Exec(ctx, `
			INSERT INTO member_snapshots (
				id, upload_id, alliance_id, member_id, member_name, contribution_rank,
				total_contribution, total_merit, total_assist, total_donation,
				power_value, state, group_name
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
			s.ID, s.UploadID, s.AllianceID, s.MemberID, s.MemberName, s.ContributionRank,
			s.TotalContribution, s.TotalMerit, s.TotalAssist, s.TotalDonation,
			s.PowerValue, s.State, s.GroupName,
		)
		if err != nil {
			return inserted, fmt.Errorf("insert snapshot for %s: %w", s.MemberID, err)
		}
		inserted++
	}
	return inserted, nil
}
