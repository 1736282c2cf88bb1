// Package analytics builds the dashboard read models: member trends, alliance
// averages, and group comparisons, all derived from the stored period metrics
// of a season.
//
// Reads load the season's joined period rows once; the shaping happens in Go
// with decimal math. Averages run over every metric row, new members included.
// In the season-opening period every row is new, so filtering them out would
// blank the period entirely; new-member counts are surfaced separately
// instead.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/warbandhq/warband/internal/model"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// periodRow is one period_metrics row joined with its period.
type periodRow struct {
	PeriodNumber int
	Days         int
	StartDate    time.Time
	EndDate      time.Time
	Metric       model.PeriodMetric
}

// seasonRows loads a season's full metric history ordered by period number.
func seasonRows(ctx context.Context, db querier, seasonID uuid.UUID) ([]periodRow, error) {
	rows, err := db.Query(ctx, "season_member_metrics", seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season metrics: %w", err)
	}
	defer rows.Close()

	var out []periodRow
	for rows.Next() {
		var r periodRow
		m := &r.Metric
		if err := rows.Scan(
			&r.PeriodNumber, &r.Days, &r.StartDate, &r.EndDate,
			&m.ID, &m.PeriodID, &m.AllianceID, &m.MemberID, &m.MemberName,
			&m.StartSnapshotID, &m.EndSnapshotID,
			&m.ContributionDiff, &m.MeritDiff, &m.AssistDiff, &m.DonationDiff, &m.PowerDiff,
			&m.DailyContribution, &m.DailyMerit, &m.DailyAssist, &m.DailyDonation,
			&m.StartRank, &m.EndRank, &m.RankChange,
			&m.EndPower, &m.EndState, &m.EndGroup, &m.IsNewMember,
		); err != nil {
			return nil, fmt.Errorf("scan season metric: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// periodGroup collects one period's rows. seasonRows returns rows ordered by
// period number, so grouping is a single pass.
type periodGroup struct {
	Number    int
	Days      int
	StartDate time.Time
	EndDate   time.Time
	Rows      []model.PeriodMetric
}

func groupByPeriod(rows []periodRow) []periodGroup {
	var groups []periodGroup
	for _, r := range rows {
		if len(groups) == 0 || groups[len(groups)-1].Number != r.PeriodNumber {
			groups = append(groups, periodGroup{
				Number:    r.PeriodNumber,
				Days:      r.Days,
				StartDate: r.StartDate,
				EndDate:   r.EndDate,
			})
		}
		g := &groups[len(groups)-1]
		g.Rows = append(g.Rows, r.Metric)
	}
	return groups
}

// avgDecimal quantizes sum/n to two decimal places; n <= 0 yields zero.
func avgDecimal(sum decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return sum.DivRound(decimal.NewFromInt(int64(n)), 2)
}

// perDay quantizes total/days to two decimal places; days <= 0 yields zero.
func perDay(total int64, days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(total).DivRound(decimal.NewFromInt(int64(days)), 2)
}
