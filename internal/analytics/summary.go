package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warbandhq/warband/internal/engine"
	"github.com/warbandhq/warband/internal/model"
	"github.com/warbandhq/warband/internal/season"
)

// --------------------------------------------------------------------------
// Period averages
// --------------------------------------------------------------------------

// PeriodAverages is one period's alliance-wide aggregate addressed by ID.
type PeriodAverages struct {
	PeriodID uuid.UUID `json:"period_id"`
	AlliancePoint
}

// GetPeriodAverages returns the alliance aggregate for a single period.
func GetPeriodAverages(ctx context.Context, db querier, periodID uuid.UUID) (*PeriodAverages, error) {
	p, err := season.GetPeriod(ctx, db, periodID)
	if err != nil {
		return nil, err
	}
	metrics, err := season.GetPeriodMetrics(ctx, db, periodID)
	if err != nil {
		return nil, err
	}
	return buildPeriodAverages(p, metrics), nil
}

func buildPeriodAverages(p model.Period, metrics []model.PeriodMetric) *PeriodAverages {
	return &PeriodAverages{
		PeriodID: p.ID,
		AlliancePoint: aggregate(periodGroup{
			Number:    p.PeriodNumber,
			Days:      p.Days,
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
			Rows:      metrics,
		}),
	}
}

// --------------------------------------------------------------------------
// Member season summary
// --------------------------------------------------------------------------

// MemberSeasonSummary is a member's season-to-date rollup across all periods.
type MemberSeasonSummary struct {
	SeasonID   uuid.UUID `json:"season_id"`
	MemberID   string    `json:"member_id"`
	MemberName string    `json:"member_name"`

	Periods    int `json:"periods"`
	ActiveDays int `json:"active_days"`

	TotalContribution int64 `json:"total_contribution"`
	TotalMerit        int64 `json:"total_merit"`
	TotalAssist       int64 `json:"total_assist"`
	TotalDonation     int64 `json:"total_donation"`
	TotalPowerChange  int64 `json:"total_power_change"`

	AvgDailyContribution decimal.Decimal `json:"avg_daily_contribution"`
	AvgDailyMerit        decimal.Decimal `json:"avg_daily_merit"`
	AvgDailyAssist       decimal.Decimal `json:"avg_daily_assist"`
	AvgDailyDonation     decimal.Decimal `json:"avg_daily_donation"`

	// Ranks are contribution board positions; lower is better.
	BestRank        int  `json:"best_rank"`
	WorstRank       int  `json:"worst_rank"`
	CurrentRank     int  `json:"current_rank"`
	JoinedMidSeason bool `json:"joined_mid_season"`
}

// GetMemberSeasonSummary returns a member's season rollup. A member with no
// metric rows in the season returns ErrNotFound.
func GetMemberSeasonSummary(ctx context.Context, db querier, seasonID uuid.UUID, memberID string) (*MemberSeasonSummary, error) {
	rows, err := seasonRows(ctx, db, seasonID)
	if err != nil {
		return nil, err
	}
	return buildMemberSeasonSummary(seasonID, memberID, rows)
}

func buildMemberSeasonSummary(seasonID uuid.UUID, memberID string, rows []periodRow) (*MemberSeasonSummary, error) {
	s := &MemberSeasonSummary{SeasonID: seasonID, MemberID: memberID}

	first := true
	for _, r := range rows {
		m := r.Metric
		if m.MemberID != memberID {
			continue
		}
		if first {
			s.JoinedMidSeason = r.PeriodNumber > 1
			s.BestRank, s.WorstRank = m.EndRank, m.EndRank
			first = false
		}
		s.MemberName = m.MemberName
		s.Periods++
		s.ActiveDays += r.Days
		s.TotalContribution += m.ContributionDiff
		s.TotalMerit += m.MeritDiff
		s.TotalAssist += m.AssistDiff
		s.TotalDonation += m.DonationDiff
		s.TotalPowerChange += m.PowerDiff
		if m.EndRank < s.BestRank {
			s.BestRank = m.EndRank
		}
		if m.EndRank > s.WorstRank {
			s.WorstRank = m.EndRank
		}
		s.CurrentRank = m.EndRank
	}
	if first {
		return nil, fmt.Errorf("member %s in season %s: %w", memberID, seasonID, model.ErrNotFound)
	}

	s.AvgDailyContribution = perDay(s.TotalContribution, s.ActiveDays)
	s.AvgDailyMerit = perDay(s.TotalMerit, s.ActiveDays)
	s.AvgDailyAssist = perDay(s.TotalAssist, s.ActiveDays)
	s.AvgDailyDonation = perDay(s.TotalDonation, s.ActiveDays)
	return s, nil
}

// --------------------------------------------------------------------------
// Group comparison
// --------------------------------------------------------------------------

// Comparison views.
const (
	ViewLatest = "latest"
	ViewSeason = "season"
)

// GroupRow is one group's aggregate within the comparison. Averages are per
// member-period row, so a season-wide view weights active periods evenly.
type GroupRow struct {
	GroupName string `json:"group_name"`
	Members   int    `json:"members"`

	AvgDailyContribution decimal.Decimal `json:"avg_daily_contribution"`
	AvgDailyMerit        decimal.Decimal `json:"avg_daily_merit"`
	AvgDailyAssist       decimal.Decimal `json:"avg_daily_assist"`
	AvgDailyDonation     decimal.Decimal `json:"avg_daily_donation"`
	TotalPowerChange     int64           `json:"total_power_change"`
}

// GroupComparison ranks groups by average daily contribution, either in the
// latest period or across the whole season.
type GroupComparison struct {
	SeasonID uuid.UUID  `json:"season_id"`
	View     string     `json:"view"`
	Groups   []GroupRow `json:"groups"`
}

// GetGroupComparison returns per-group averages for a season.
func GetGroupComparison(ctx context.Context, db querier, seasonID uuid.UUID, latestOnly bool) (*GroupComparison, error) {
	rows, err := seasonRows(ctx, db, seasonID)
	if err != nil {
		return nil, err
	}
	return buildGroupComparison(seasonID, latestOnly, rows), nil
}

func buildGroupComparison(seasonID uuid.UUID, latestOnly bool, rows []periodRow) *GroupComparison {
	groups := groupByPeriod(rows)
	view := ViewSeason
	if latestOnly {
		view = ViewLatest
		if len(groups) > 0 {
			groups = groups[len(groups)-1:]
		}
	}

	type bucket struct {
		members                map[string]struct{}
		rowCount               int
		sumContribution        decimal.Decimal
		sumMerit               decimal.Decimal
		sumAssist, sumDonation decimal.Decimal
		power                  int64
	}
	order := []string{}
	buckets := map[string]*bucket{}
	for _, g := range groups {
		for _, m := range g.Rows {
			name := m.EndGroup
			if name == "" {
				name = engine.UnassignedGroup
			}
			b, ok := buckets[name]
			if !ok {
				b = &bucket{members: map[string]struct{}{}}
				buckets[name] = b
				order = append(order, name)
			}
			b.members[m.MemberID] = struct{}{}
			b.rowCount++
			b.sumContribution = b.sumContribution.Add(m.DailyContribution)
			b.sumMerit = b.sumMerit.Add(m.DailyMerit)
			b.sumAssist = b.sumAssist.Add(m.DailyAssist)
			b.sumDonation = b.sumDonation.Add(m.DailyDonation)
			b.power += m.PowerDiff
		}
	}

	out := &GroupComparison{SeasonID: seasonID, View: view, Groups: []GroupRow{}}
	for _, name := range order {
		b := buckets[name]
		out.Groups = append(out.Groups, GroupRow{
			GroupName:            name,
			Members:              len(b.members),
			AvgDailyContribution: avgDecimal(b.sumContribution, b.rowCount),
			AvgDailyMerit:        avgDecimal(b.sumMerit, b.rowCount),
			AvgDailyAssist:       avgDecimal(b.sumAssist, b.rowCount),
			AvgDailyDonation:     avgDecimal(b.sumDonation, b.rowCount),
			TotalPowerChange:     b.power,
		})
	}
	sort.SliceStable(out.Groups, func(i, j int) bool {
		return out.Groups[i].AvgDailyContribution.GreaterThan(out.Groups[j].AvgDailyContribution)
	})
	return out
}
