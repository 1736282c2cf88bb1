package db

import (
	"context"
	"fmt"
)

// Migrate applies the schema. Statements are idempotent, so running it on
// every deploy is safe.
func Migrate(ctx context.Context, pool *Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS alliances (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS seasons (
    id UUID PRIMARY KEY,
    alliance_id UUID NOT NULL REFERENCES alliances(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    start_date TIMESTAMPTZ NOT NULL,
    end_date TIMESTAMPTZ,
    is_current BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_seasons_alliance ON seasons (alliance_id, start_date DESC);

CREATE TABLE IF NOT EXISTS uploads (
    id UUID PRIMARY KEY,
    season_id UUID NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
    alliance_id UUID NOT NULL,
    snapshot_date TIMESTAMPTZ NOT NULL,
    label TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_uploads_season_date ON uploads (season_id, snapshot_date);

CREATE TABLE IF NOT EXISTS member_snapshots (
    id UUID PRIMARY KEY,
    upload_id UUID NOT NULL REFERENCES uploads(id) ON DELETE CASCADE,
    alliance_id UUID NOT NULL,
    member_id TEXT NOT NULL,
    member_name TEXT NOT NULL,
    contribution_rank INT NOT NULL DEFAULT 0,
    total_contribution BIGINT NOT NULL DEFAULT 0,
    total_merit BIGINT NOT NULL DEFAULT 0,
    total_assist BIGINT NOT NULL DEFAULT 0,
    total_donation BIGINT NOT NULL DEFAULT 0,
    power_value BIGINT NOT NULL DEFAULT 0,
    state TEXT NOT NULL DEFAULT '',
    group_name TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (upload_id, member_id)
);

CREATE TABLE IF NOT EXISTS periods (
    id UUID PRIMARY KEY,
    season_id UUID NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
    alliance_id UUID NOT NULL,
    start_upload_id UUID REFERENCES uploads(id) ON DELETE CASCADE,
    end_upload_id UUID NOT NULL REFERENCES uploads(id) ON DELETE CASCADE,
    start_date TIMESTAMPTZ NOT NULL,
    end_date TIMESTAMPTZ NOT NULL,
    days INT NOT NULL CHECK (days > 0),
    period_number INT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (season_id, period_number)
);

CREATE TABLE IF NOT EXISTS period_metrics (
    id UUID PRIMARY KEY,
    period_id UUID NOT NULL REFERENCES periods(id) ON DELETE CASCADE,
    alliance_id UUID NOT NULL,
    member_id TEXT NOT NULL,
    member_name TEXT NOT NULL,
    start_snapshot_id UUID,
    end_snapshot_id UUID NOT NULL,
    contribution_diff BIGINT NOT NULL CHECK (contribution_diff >= 0),
    merit_diff BIGINT NOT NULL CHECK (merit_diff >= 0),
    assist_diff BIGINT NOT NULL CHECK (assist_diff >= 0),
    donation_diff BIGINT NOT NULL CHECK (donation_diff >= 0),
    power_diff BIGINT NOT NULL,
    daily_contribution NUMERIC(14,2) NOT NULL DEFAULT 0,
    daily_merit NUMERIC(14,2) NOT NULL DEFAULT 0,
    daily_assist NUMERIC(14,2) NOT NULL DEFAULT 0,
    daily_donation NUMERIC(14,2) NOT NULL DEFAULT 0,
    start_rank INT,
    end_rank INT NOT NULL DEFAULT 0,
    rank_change INT,
    end_power BIGINT NOT NULL DEFAULT 0,
    end_state TEXT NOT NULL DEFAULT '',
    end_group TEXT NOT NULL DEFAULT '',
    is_new_member BOOLEAN NOT NULL DEFAULT FALSE,
    UNIQUE (period_id, member_id)
);
CREATE INDEX IF NOT EXISTS idx_period_metrics_member ON period_metrics (alliance_id, member_id);

CREATE TABLE IF NOT EXISTS events (
    id UUID PRIMARY KEY,
    alliance_id UUID NOT NULL REFERENCES alliances(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'draft',
    description TEXT NOT NULL DEFAULT '',
    before_upload_id UUID REFERENCES uploads(id) ON DELETE SET NULL,
    after_upload_id UUID REFERENCES uploads(id) ON DELETE SET NULL,
    event_start TIMESTAMPTZ,
    event_end TIMESTAMPTZ,
    last_error TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_events_alliance_status ON events (alliance_id, status);

CREATE TABLE IF NOT EXISTS event_metrics (
    id UUID PRIMARY KEY,
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    alliance_id UUID NOT NULL,
    member_id TEXT NOT NULL,
    member_name TEXT NOT NULL,
    start_snapshot_id UUID,
    end_snapshot_id UUID,
    contribution_diff BIGINT NOT NULL DEFAULT 0,
    merit_diff BIGINT NOT NULL DEFAULT 0,
    assist_diff BIGINT NOT NULL DEFAULT 0,
    donation_diff BIGINT NOT NULL DEFAULT 0,
    power_diff BIGINT NOT NULL DEFAULT 0,
    participated BOOLEAN NOT NULL DEFAULT FALSE,
    violated BOOLEAN NOT NULL DEFAULT FALSE,
    is_new_member BOOLEAN NOT NULL DEFAULT FALSE,
    is_absent BOOLEAN NOT NULL DEFAULT FALSE,
    group_name TEXT NOT NULL DEFAULT '',
    end_power BIGINT NOT NULL DEFAULT 0,
    UNIQUE (event_id, member_id)
);

CREATE TABLE IF NOT EXISTS rebuild_jobs (
    id UUID PRIMARY KEY,
    season_id UUID NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
    status TEXT NOT NULL DEFAULT 'queued',
    periods_built INT NOT NULL DEFAULT 0,
    metrics_built INT NOT NULL DEFAULT 0,
    error TEXT NOT NULL DEFAULT '',
    enqueued_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    started_at TIMESTAMPTZ,
    finished_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_rebuild_jobs_season ON rebuild_jobs (season_id, enqueued_at DESC);
`
