// Package model defines the domain types shared across the warband service:
// alliances, seasons, snapshot uploads, computed periods, battle events, and
// the metric rows derived from snapshot diffs.
//
// All cumulative counters (contribution, merit, assist, donation) only ever
// grow in the source data; power is an instantaneous level and may move in
// either direction. Diff fields follow the same rule: cumulative diffs are
// clamped at zero, power diffs are signed.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --------------------------------------------------------------------------
// Core entities
// --------------------------------------------------------------------------

// Alliance is the tenant boundary. All computation happens within one alliance.
type Alliance struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Season is a scoring window within an alliance. EndDate is nil while the
// season is running.
type Season struct {
	ID         uuid.UUID  `json:"id"`
	AllianceID uuid.UUID  `json:"alliance_id"`
	Name       string     `json:"name"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	IsCurrent  bool       `json:"is_current"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Upload records one snapshot file registered for a season. SnapshotDate is
// when the game exported the data, not when it was uploaded; all ordering
// uses SnapshotDate.
type Upload struct {
	ID           uuid.UUID `json:"id"`
	SeasonID     uuid.UUID `json:"season_id"`
	AllianceID   uuid.UUID `json:"alliance_id"`
	SnapshotDate time.Time `json:"snapshot_date"`
	Label        string    `json:"label"`
	CreatedAt    time.Time `json:"created_at"`
}

// MemberSnapshot is one member's row from one upload. Immutable once written.
type MemberSnapshot struct {
	ID                uuid.UUID `json:"id"`
	UploadID          uuid.UUID `json:"upload_id"`
	AllianceID        uuid.UUID `json:"alliance_id"`
	MemberID          string    `json:"member_id"` // stable in-game identifier
	MemberName        string    `json:"member_name"`
	ContributionRank  int       `json:"contribution_rank"`
	TotalContribution int64     `json:"total_contribution"`
	TotalMerit        int64     `json:"total_merit"`
	TotalAssist       int64     `json:"total_assist"`
	TotalDonation     int64     `json:"total_donation"`
	PowerValue        int64     `json:"power_value"`
	State             string    `json:"state"`
	GroupName         string    `json:"group_name"`
	CreatedAt         time.Time `json:"created_at"`
}

// --------------------------------------------------------------------------
// Periods
// --------------------------------------------------------------------------

// Period is the interval between two consecutive uploads of a season. The
// first period of a season runs from the season start date to the first
// upload and has no StartUploadID.
type Period struct {
	ID            uuid.UUID  `json:"id"`
	SeasonID      uuid.UUID  `json:"season_id"`
	AllianceID    uuid.UUID  `json:"alliance_id"`
	StartUploadID *uuid.UUID `json:"start_upload_id,omitempty"`
	EndUploadID   uuid.UUID  `json:"end_upload_id"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	Days          int        `json:"days"` // always >= 1; zero-day candidates are never materialized
	PeriodNumber  int        `json:"period_number"`
	CreatedAt     time.Time  `json:"created_at"`
}

// PeriodMetric is one member's computed deltas for one period. Exactly one
// row exists per (period, member).
type PeriodMetric struct {
	ID               uuid.UUID  `json:"id"`
	PeriodID         uuid.UUID  `json:"period_id"`
	AllianceID       uuid.UUID  `json:"alliance_id"`
	MemberID         string     `json:"member_id"`
	MemberName       string     `json:"member_name"`
	StartSnapshotID  *uuid.UUID `json:"start_snapshot_id,omitempty"`
	EndSnapshotID    uuid.UUID  `json:"end_snapshot_id"`
	ContributionDiff int64      `json:"contribution_diff"`
	MeritDiff        int64      `json:"merit_diff"`
	AssistDiff       int64      `json:"assist_diff"`
	DonationDiff     int64      `json:"donation_diff"`
	PowerDiff        int64      `json:"power_diff"`

	// Daily rates are diff/days quantized to two decimal places.
	DailyContribution decimal.Decimal `json:"daily_contribution"`
	DailyMerit        decimal.Decimal `json:"daily_merit"`
	DailyAssist       decimal.Decimal `json:"daily_assist"`
	DailyDonation     decimal.Decimal `json:"daily_donation"`

	// Rank fields. RankChange is start minus end, so climbing the board
	// yields a positive value. Nil for members without a starting snapshot.
	StartRank  *int `json:"start_rank,omitempty"`
	EndRank    int  `json:"end_rank"`
	RankChange *int `json:"rank_change,omitempty"`

	EndPower    int64  `json:"end_power"`
	EndState    string `json:"end_state"`
	EndGroup    string `json:"end_group"`
	IsNewMember bool   `json:"is_new_member"`
}

// --------------------------------------------------------------------------
// Events
// --------------------------------------------------------------------------

// Event is a named in-game engagement bounded by a before and an after
// upload. Events belong to an alliance; season linkage comes through the
// uploads they reference.
type Event struct {
	ID             uuid.UUID   `json:"id"`
	AllianceID     uuid.UUID   `json:"alliance_id"`
	Name           string      `json:"name"`
	Category       Category    `json:"category"`
	Status         EventStatus `json:"status"`
	Description    string      `json:"description,omitempty"`
	BeforeUploadID *uuid.UUID  `json:"before_upload_id,omitempty"`
	AfterUploadID  *uuid.UUID  `json:"after_upload_id,omitempty"`
	EventStart     *time.Time  `json:"event_start,omitempty"`
	EventEnd       *time.Time  `json:"event_end,omitempty"`
	LastError      string      `json:"last_error,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// EventMetric is one member's computed deltas for one event. Exactly one row
// exists per (event, member).
type EventMetric struct {
	ID               uuid.UUID  `json:"id"`
	EventID          uuid.UUID  `json:"event_id"`
	AllianceID       uuid.UUID  `json:"alliance_id"`
	MemberID         string     `json:"member_id"`
	MemberName       string     `json:"member_name"`
	StartSnapshotID  *uuid.UUID `json:"start_snapshot_id,omitempty"`
	EndSnapshotID    *uuid.UUID `json:"end_snapshot_id,omitempty"`
	ContributionDiff int64      `json:"contribution_diff"`
	MeritDiff        int64      `json:"merit_diff"`
	AssistDiff       int64      `json:"assist_diff"`
	DonationDiff     int64      `json:"donation_diff"`
	PowerDiff        int64      `json:"power_diff"`

	// Participated is category-dependent; see engine.Classify. Violated is
	// only ever true for forbidden-zone events. A member present before but
	// missing after is absent; new members are never counted absent.
	Participated bool `json:"participated"`
	Violated     bool `json:"violated"`
	IsNewMember  bool `json:"is_new_member"`
	IsAbsent     bool `json:"is_absent"`

	GroupName string `json:"group_name"`
	EndPower  int64  `json:"end_power"`
}

// --------------------------------------------------------------------------
// Rebuild jobs
// --------------------------------------------------------------------------

// RebuildJob tracks one queued season recalculation.
type RebuildJob struct {
	ID           uuid.UUID  `json:"id"`
	SeasonID     uuid.UUID  `json:"season_id"`
	Status       JobStatus  `json:"status"`
	PeriodsBuilt int        `json:"periods_built"`
	MetricsBuilt int        `json:"metrics_built"`
	Error        string     `json:"error,omitempty"`
	EnqueuedAt   time.Time  `json:"enqueued_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}
