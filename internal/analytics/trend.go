package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warbandhq/warband/internal/model"
)

// --------------------------------------------------------------------------
// Member trend
// --------------------------------------------------------------------------

// TrendPoint is one period of a member's trend, with the alliance average for
// the same period alongside for comparison.
type TrendPoint struct {
	PeriodNumber int       `json:"period_number"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Days         int       `json:"days"`

	DailyContribution decimal.Decimal `json:"daily_contribution"`
	DailyMerit        decimal.Decimal `json:"daily_merit"`
	DailyAssist       decimal.Decimal `json:"daily_assist"`
	DailyDonation     decimal.Decimal `json:"daily_donation"`

	EndRank    int  `json:"end_rank"`
	RankChange *int `json:"rank_change,omitempty"`

	AllianceAvgContribution decimal.Decimal `json:"alliance_avg_contribution"`
	AllianceAvgMerit        decimal.Decimal `json:"alliance_avg_merit"`
}

// MemberTrend is a member's period-by-period progression within one season.
type MemberTrend struct {
	SeasonID   uuid.UUID    `json:"season_id"`
	MemberID   string       `json:"member_id"`
	MemberName string       `json:"member_name"`
	Points     []TrendPoint `json:"points"`
}

// GetMemberTrend returns a member's trend across a season's periods. A member
// with no metric rows in the season returns ErrNotFound.
func GetMemberTrend(ctx context.Context, db querier, seasonID uuid.UUID, memberID string) (*MemberTrend, error) {
	rows, err := seasonRows(ctx, db, seasonID)
	if err != nil {
		return nil, err
	}
	return buildMemberTrend(seasonID, memberID, rows)
}

func buildMemberTrend(seasonID uuid.UUID, memberID string, rows []periodRow) (*MemberTrend, error) {
	trend := &MemberTrend{SeasonID: seasonID, MemberID: memberID, Points: []TrendPoint{}}

	for _, g := range groupByPeriod(rows) {
		var member *model.PeriodMetric
		sumContribution, sumMerit := decimal.Zero, decimal.Zero
		for i := range g.Rows {
			m := &g.Rows[i]
			if m.MemberID == memberID {
				member = m
			}
			sumContribution = sumContribution.Add(m.DailyContribution)
			sumMerit = sumMerit.Add(m.DailyMerit)
		}
		if member == nil {
			continue
		}

		trend.MemberName = member.MemberName
		trend.Points = append(trend.Points, TrendPoint{
			PeriodNumber:            g.Number,
			StartDate:               g.StartDate,
			EndDate:                 g.EndDate,
			Days:                    g.Days,
			DailyContribution:       member.DailyContribution,
			DailyMerit:              member.DailyMerit,
			DailyAssist:             member.DailyAssist,
			DailyDonation:           member.DailyDonation,
			EndRank:                 member.EndRank,
			RankChange:              member.RankChange,
			AllianceAvgContribution: avgDecimal(sumContribution, len(g.Rows)),
			AllianceAvgMerit:        avgDecimal(sumMerit, len(g.Rows)),
		})
	}

	if len(trend.Points) == 0 {
		return nil, fmt.Errorf("member %s in season %s: %w", memberID, seasonID, model.ErrNotFound)
	}
	return trend, nil
}

// --------------------------------------------------------------------------
// Alliance trend
// --------------------------------------------------------------------------

// AlliancePoint is one period's alliance-wide aggregate.
type AlliancePoint struct {
	PeriodNumber int       `json:"period_number"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Days         int       `json:"days"`
	MemberCount  int       `json:"member_count"`
	NewMembers   int       `json:"new_members"`

	AvgDailyContribution decimal.Decimal `json:"avg_daily_contribution"`
	AvgDailyMerit        decimal.Decimal `json:"avg_daily_merit"`
	AvgDailyAssist       decimal.Decimal `json:"avg_daily_assist"`
	AvgDailyDonation     decimal.Decimal `json:"avg_daily_donation"`
	TotalPowerChange     int64           `json:"total_power_change"`
}

// AllianceTrend is the alliance's period-by-period aggregate across a season.
type AllianceTrend struct {
	SeasonID uuid.UUID       `json:"season_id"`
	Points   []AlliancePoint `json:"points"`
}

// GetAllianceTrend returns per-period alliance averages for a season. Seasons
// without computed periods return an empty point list.
func GetAllianceTrend(ctx context.Context, db querier, seasonID uuid.UUID) (*AllianceTrend, error) {
	rows, err := seasonRows(ctx, db, seasonID)
	if err != nil {
		return nil, err
	}
	return buildAllianceTrend(seasonID, rows), nil
}

func buildAllianceTrend(seasonID uuid.UUID, rows []periodRow) *AllianceTrend {
	trend := &AllianceTrend{SeasonID: seasonID, Points: []AlliancePoint{}}
	for _, g := range groupByPeriod(rows) {
		trend.Points = append(trend.Points, aggregate(g))
	}
	return trend
}

// aggregate folds one period's rows into an alliance-wide point.
func aggregate(g periodGroup) AlliancePoint {
	point := AlliancePoint{
		PeriodNumber: g.Number,
		StartDate:    g.StartDate,
		EndDate:      g.EndDate,
		Days:         g.Days,
		MemberCount:  len(g.Rows),
	}
	sumContribution, sumMerit := decimal.Zero, decimal.Zero
	sumAssist, sumDonation := decimal.Zero, decimal.Zero
	for _, m := range g.Rows {
		point.TotalPowerChange += m.PowerDiff
		if m.IsNewMember {
			point.NewMembers++
		}
		sumContribution = sumContribution.Add(m.DailyContribution)
		sumMerit = sumMerit.Add(m.DailyMerit)
		sumAssist = sumAssist.Add(m.DailyAssist)
		sumDonation = sumDonation.Add(m.DailyDonation)
	}
	point.AvgDailyContribution = avgDecimal(sumContribution, len(g.Rows))
	point.AvgDailyMerit = avgDecimal(sumMerit, len(g.Rows))
	point.AvgDailyAssist = avgDecimal(sumAssist, len(g.Rows))
	point.AvgDailyDonation = avgDecimal(sumDonation, len(g.Rows))
	return point
}
