package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warbandhq/warband/internal/model"
)

var (
	testSeasonID = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	seasonStart  = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
)

type rowSpec struct {
	member string
	group  string
	isNew  bool
	rank   int

	dailyC, dailyM, dailyA, dailyD int64
	diffC, diffM, diffA, diffD     int64
	power                          int64
}

func makeRow(period, days int, spec rowSpec) periodRow {
	end := seasonStart.AddDate(0, 0, period*7)
	return periodRow{
		PeriodNumber: period,
		Days:         days,
		StartDate:    end.AddDate(0, 0, -days),
		EndDate:      end,
		Metric: model.PeriodMetric{
			MemberID:          spec.member,
			MemberName:        spec.member,
			ContributionDiff:  spec.diffC,
			MeritDiff:         spec.diffM,
			AssistDiff:        spec.diffA,
			DonationDiff:      spec.diffD,
			PowerDiff:         spec.power,
			DailyContribution: decimal.NewFromInt(spec.dailyC),
			DailyMerit:        decimal.NewFromInt(spec.dailyM),
			DailyAssist:       decimal.NewFromInt(spec.dailyA),
			DailyDonation:     decimal.NewFromInt(spec.dailyD),
			EndRank:           spec.rank,
			EndGroup:          spec.group,
			IsNewMember:       spec.isNew,
		},
	}
}

// Two-period season: ana and bo from the start, cy joins in period two.
func seasonFixture() []periodRow {
	return []periodRow{
		makeRow(1, 7, rowSpec{member: "ana", group: "bears", isNew: true, rank: 1,
			dailyC: 1000, dailyM: 500, dailyA: 100, dailyD: 50,
			diffC: 7000, diffM: 3500, diffA: 700, diffD: 350}),
		makeRow(1, 7, rowSpec{member: "bo", group: "wolves", isNew: true, rank: 2,
			dailyC: 700, dailyM: 300, dailyA: 80, dailyD: 40,
			diffC: 4900, diffM: 2100, diffA: 560, diffD: 280}),

		makeRow(2, 3, rowSpec{member: "ana", group: "bears", rank: 1,
			dailyC: 900, dailyM: 450, dailyA: 100, dailyD: 50,
			diffC: 2700, diffM: 1350, diffA: 300, diffD: 150, power: 500}),
		makeRow(2, 3, rowSpec{member: "bo", group: "wolves", rank: 2,
			dailyC: 600, dailyM: 200, dailyA: 90, dailyD: 30,
			diffC: 1800, diffM: 600, diffA: 270, diffD: 90, power: -200}),
		makeRow(2, 3, rowSpec{member: "cy", group: "", isNew: true, rank: 3,
			dailyC: 240, dailyM: 100,
			diffC: 720, diffM: 300}),
	}
}

func TestBuildMemberTrend(t *testing.T) {
	trend, err := buildMemberTrend(testSeasonID, "ana", seasonFixture())
	require.NoError(t, err)

	assert.Equal(t, "ana", trend.MemberName)
	require.Len(t, trend.Points, 2)

	first := trend.Points[0]
	assert.Equal(t, 1, first.PeriodNumber)
	assert.Equal(t, 7, first.Days)
	assert.Equal(t, "1000.00", first.DailyContribution.StringFixed(2))
	assert.Equal(t, "850.00", first.AllianceAvgContribution.StringFixed(2))
	assert.Equal(t, "400.00", first.AllianceAvgMerit.StringFixed(2))

	second := trend.Points[1]
	assert.Equal(t, 2, second.PeriodNumber)
	assert.Equal(t, "580.00", second.AllianceAvgContribution.StringFixed(2))
	assert.Equal(t, "250.00", second.AllianceAvgMerit.StringFixed(2))
	assert.Equal(t, 1, second.EndRank)
}

func TestBuildMemberTrendLateJoiner(t *testing.T) {
	trend, err := buildMemberTrend(testSeasonID, "cy", seasonFixture())
	require.NoError(t, err)
	require.Len(t, trend.Points, 1)
	assert.Equal(t, 2, trend.Points[0].PeriodNumber)
}

func TestBuildMemberTrendUnknownMember(t *testing.T) {
	_, err := buildMemberTrend(testSeasonID, "ghost", seasonFixture())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestBuildAllianceTrend(t *testing.T) {
	trend := buildAllianceTrend(testSeasonID, seasonFixture())
	require.Len(t, trend.Points, 2)

	first := trend.Points[0]
	assert.Equal(t, 2, first.MemberCount)
	assert.Equal(t, 2, first.NewMembers)
	assert.Equal(t, "850.00", first.AvgDailyContribution.StringFixed(2))
	assert.Equal(t, "45.00", first.AvgDailyDonation.StringFixed(2))
	assert.Equal(t, int64(0), first.TotalPowerChange)

	second := trend.Points[1]
	assert.Equal(t, 3, second.MemberCount)
	assert.Equal(t, 1, second.NewMembers)
	assert.Equal(t, "580.00", second.AvgDailyContribution.StringFixed(2))
	assert.Equal(t, "63.33", second.AvgDailyAssist.StringFixed(2))
	assert.Equal(t, "26.67", second.AvgDailyDonation.StringFixed(2))
	assert.Equal(t, int64(300), second.TotalPowerChange)
}

func TestBuildAllianceTrendEmptySeason(t *testing.T) {
	trend := buildAllianceTrend(testSeasonID, nil)
	assert.Empty(t, trend.Points)
	assert.NotNil(t, trend.Points)
}

func TestBuildPeriodAverages(t *testing.T) {
	rows := seasonFixture()[2:]
	metrics := make([]model.PeriodMetric, 0, len(rows))
	for _, r := range rows {
		metrics = append(metrics, r.Metric)
	}
	p := model.Period{
		ID:           uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002"),
		PeriodNumber: 2,
		Days:         3,
		StartDate:    rows[0].StartDate,
		EndDate:      rows[0].EndDate,
	}

	avg := buildPeriodAverages(p, metrics)
	assert.Equal(t, p.ID, avg.PeriodID)
	assert.Equal(t, 2, avg.PeriodNumber)
	assert.Equal(t, 3, avg.MemberCount)
	assert.Equal(t, 1, avg.NewMembers)
	assert.Equal(t, "580.00", avg.AvgDailyContribution.StringFixed(2))
	assert.Equal(t, int64(300), avg.TotalPowerChange)
}

func TestBuildMemberSeasonSummary(t *testing.T) {
	s, err := buildMemberSeasonSummary(testSeasonID, "ana", seasonFixture())
	require.NoError(t, err)

	assert.Equal(t, 2, s.Periods)
	assert.Equal(t, 10, s.ActiveDays)
	assert.Equal(t, int64(9700), s.TotalContribution)
	assert.Equal(t, int64(4850), s.TotalMerit)
	assert.Equal(t, int64(1000), s.TotalAssist)
	assert.Equal(t, int64(500), s.TotalDonation)
	assert.Equal(t, int64(500), s.TotalPowerChange)
	assert.Equal(t, "970.00", s.AvgDailyContribution.StringFixed(2))
	assert.Equal(t, "485.00", s.AvgDailyMerit.StringFixed(2))
	assert.Equal(t, 1, s.BestRank)
	assert.Equal(t, 1, s.WorstRank)
	assert.Equal(t, 1, s.CurrentRank)
	assert.False(t, s.JoinedMidSeason)
}

func TestBuildMemberSeasonSummaryMidSeasonJoiner(t *testing.T) {
	s, err := buildMemberSeasonSummary(testSeasonID, "cy", seasonFixture())
	require.NoError(t, err)

	assert.True(t, s.JoinedMidSeason)
	assert.Equal(t, 1, s.Periods)
	assert.Equal(t, 3, s.ActiveDays)
	assert.Equal(t, int64(720), s.TotalContribution)
	assert.Equal(t, "240.00", s.AvgDailyContribution.StringFixed(2))
	assert.Equal(t, 3, s.CurrentRank)
}

func TestBuildMemberSeasonSummaryUnknownMember(t *testing.T) {
	_, err := buildMemberSeasonSummary(testSeasonID, "ghost", seasonFixture())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestBuildGroupComparisonSeasonView(t *testing.T) {
	cmp := buildGroupComparison(testSeasonID, false, seasonFixture())

	assert.Equal(t, ViewSeason, cmp.View)
	require.Len(t, cmp.Groups, 3)

	assert.Equal(t, "bears", cmp.Groups[0].GroupName)
	assert.Equal(t, 1, cmp.Groups[0].Members)
	assert.Equal(t, "950.00", cmp.Groups[0].AvgDailyContribution.StringFixed(2))
	assert.Equal(t, int64(500), cmp.Groups[0].TotalPowerChange)

	assert.Equal(t, "wolves", cmp.Groups[1].GroupName)
	assert.Equal(t, "650.00", cmp.Groups[1].AvgDailyContribution.StringFixed(2))

	assert.Equal(t, "unassigned", cmp.Groups[2].GroupName)
	assert.Equal(t, "240.00", cmp.Groups[2].AvgDailyContribution.StringFixed(2))
}

func TestBuildGroupComparisonLatestView(t *testing.T) {
	cmp := buildGroupComparison(testSeasonID, true, seasonFixture())

	assert.Equal(t, ViewLatest, cmp.View)
	require.Len(t, cmp.Groups, 3)
	assert.Equal(t, "900.00", cmp.Groups[0].AvgDailyContribution.StringFixed(2))
	for _, g := range cmp.Groups {
		assert.Equal(t, 1, g.Members)
	}
}

func TestGroupByPeriodKeepsOrder(t *testing.T) {
	groups := groupByPeriod(seasonFixture())
	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].Number)
	assert.Len(t, groups[0].Rows, 2)
	assert.Equal(t, 2, groups[1].Number)
	assert.Len(t, groups[1].Rows, 3)
}

func TestPerDay(t *testing.T) {
	assert.Equal(t, "333.33", perDay(1000, 3).StringFixed(2))
	assert.True(t, perDay(1000, 0).IsZero())
}
