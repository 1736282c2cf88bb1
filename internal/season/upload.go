package season

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warbandhq/warband/internal/model"
	"github.com/warbandhq/warband/internal/snapshot"
)

// RegisterUpload stores an upload and its member snapshot rows in one
// transaction. It takes the season's advisory lock so a registration never
// lands between a running rebuild's read and its commit. Registration does
// not rebuild periods itself; callers enqueue a rebuild afterwards so bursts
// of uploads coalesce into one recalculation.
func RegisterUpload(ctx context.Context, pool *pgxpool.Pool, up model.Upload, rows []model.MemberSnapshot) (*model.Upload, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("register upload: no member rows")
	}

	s, err := GetSeason(ctx, pool, up.SeasonID)
	if err != nil {
		return nil, err
	}
	if up.ID == uuid.Nil {
		up.ID = uuid.New()
	}
	up.AllianceID = s.AllianceID

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin upload registration: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey(up.SeasonID)); err != nil {
		return nil, fmt.Errorf("acquire season lock: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO uploads (id, season_id, alliance_id, snapshot_date, label)
		VALUES ($1,$2,$3,$4,$5)`,
		up.ID, up.SeasonID, up.AllianceID, up.SnapshotDate, up.Label,
	); err != nil {
		return nil, fmt.Errorf("insert upload: %w", err)
	}

	for i := range rows {
		rows[i].UploadID = up.ID
		rows[i].AllianceID = up.AllianceID
	}
	if _, err := snapshot.InsertBatch(ctx, tx, rows); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit upload registration: %w", err)
	}
	return &up, nil
}

// RemoveUpload deletes an upload and, through FK cascades, its snapshot rows.
// Events referencing the upload keep their metrics but lose the reference.
// The removed upload is returned so the caller can enqueue a rebuild for its
// season.
func RemoveUpload(ctx context.Context, pool *pgxpool.Pool, uploadID uuid.UUID) (*model.Upload, error) {
	up, err := GetUpload(ctx, pool, uploadID)
	if err != nil {
		return nil, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin upload removal: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey(up.SeasonID)); err != nil {
		return nil, fmt.Errorf("acquire season lock: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM uploads WHERE id = $1", uploadID); err != nil {
		return nil, fmt.Errorf("delete upload: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit upload removal: %w", err)
	}
	return &up, nil
}
