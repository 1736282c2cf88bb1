package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warbandhq/warband/internal/model"
)

func testSeason(start string) model.Season {
	return model.Season{
		ID:         uuid.New(),
		AllianceID: uuid.New(),
		Name:       "S1",
		StartDate:  day(start),
	}
}

func testUpload(season model.Season, date string) model.Upload {
	return model.Upload{
		ID:           uuid.New(),
		SeasonID:     season.ID,
		AllianceID:   season.AllianceID,
		SnapshotDate: day(date),
	}
}

// A season start, a first upload a week later, and a second upload a week
// after that: the opening period treats everyone as new with raw totals as
// diffs, the second period diffs against the first upload.
func TestBuildPeriodsTwoUploads(t *testing.T) {
	season := testSeason("2025-01-01")
	up1 := testUpload(season, "2025-01-08")
	up2 := testUpload(season, "2025-01-15")

	first := testSnap("M", 7000, 100, 10, 5, 90000)
	first.ContributionRank = 3
	second := testSnap("M", 12000, 150, 12, 9, 91000)
	second.ContributionRank = 1

	plans := BuildPeriods(season, []model.Upload{up1, up2}, map[uuid.UUID][]model.MemberSnapshot{
		up1.ID: {first},
		up2.ID: {second},
	})
	require.Len(t, plans, 2)

	p1 := plans[0]
	assert.Equal(t, 1, p1.Period.PeriodNumber)
	assert.Equal(t, 7, p1.Period.Days)
	assert.Nil(t, p1.Period.StartUploadID)
	assert.Equal(t, up1.ID, p1.Period.EndUploadID)
	require.Len(t, p1.Metrics, 1)

	m1 := p1.Metrics[0]
	assert.True(t, m1.IsNewMember)
	assert.Equal(t, int64(7000), m1.ContributionDiff)
	assert.Equal(t, "1000.00", m1.DailyContribution.StringFixed(2))
	assert.Zero(t, m1.PowerDiff)
	assert.Nil(t, m1.StartRank)
	assert.Nil(t, m1.RankChange)
	assert.Equal(t, 3, m1.EndRank)

	p2 := plans[1]
	assert.Equal(t, 2, p2.Period.PeriodNumber)
	assert.Equal(t, 7, p2.Period.Days)
	require.NotNil(t, p2.Period.StartUploadID)
	assert.Equal(t, up1.ID, *p2.Period.StartUploadID)
	require.Len(t, p2.Metrics, 1)

	m2 := p2.Metrics[0]
	assert.False(t, m2.IsNewMember)
	assert.Equal(t, int64(5000), m2.ContributionDiff)
	assert.Equal(t, "714.29", m2.DailyContribution.StringFixed(2))
	assert.Equal(t, int64(1000), m2.PowerDiff)
	require.NotNil(t, m2.StartRank)
	assert.Equal(t, 3, *m2.StartRank)
	require.NotNil(t, m2.RankChange)
	assert.Equal(t, 2, *m2.RankChange, "climbing from rank 3 to rank 1 is +2")
}

// Uploads arrive in arbitrary order; period construction re-sorts them.
func TestBuildPeriodsSortsUploads(t *testing.T) {
	season := testSeason("2025-01-01")
	up1 := testUpload(season, "2025-01-08")
	up2 := testUpload(season, "2025-01-15")

	snaps := map[uuid.UUID][]model.MemberSnapshot{
		up1.ID: {testSnap("M", 7000, 0, 0, 0, 0)},
		up2.ID: {testSnap("M", 12000, 0, 0, 0, 0)},
	}

	plans := BuildPeriods(season, []model.Upload{up2, up1}, snaps)
	require.Len(t, plans, 2)
	assert.Equal(t, up1.ID, plans[0].Period.EndUploadID)
	assert.Equal(t, up2.ID, plans[1].Period.EndUploadID)
}

// An upload dated on the season start day produces a zero-day window, which
// is skipped without consuming a period number.
func TestBuildPeriodsSkipsZeroDayWindows(t *testing.T) {
	season := testSeason("2025-01-01")
	sameDay := testUpload(season, "2025-01-01")
	later := testUpload(season, "2025-01-08")

	plans := BuildPeriods(season, []model.Upload{sameDay, later}, map[uuid.UUID][]model.MemberSnapshot{
		sameDay.ID: {testSnap("M", 100, 0, 0, 0, 0)},
		later.ID:   {testSnap("M", 700, 0, 0, 0, 0)},
	})

	require.Len(t, plans, 1)
	assert.Equal(t, 1, plans[0].Period.PeriodNumber)
	assert.Equal(t, later.ID, plans[0].Period.EndUploadID)
	assert.Equal(t, 7, plans[0].Period.Days)
}

// A member missing from the end snapshot produces no metric row.
func TestBuildPeriodsDropsDepartedMembers(t *testing.T) {
	season := testSeason("2025-01-01")
	up1 := testUpload(season, "2025-01-08")
	up2 := testUpload(season, "2025-01-15")

	plans := BuildPeriods(season, []model.Upload{up1, up2}, map[uuid.UUID][]model.MemberSnapshot{
		up1.ID: {testSnap("stays", 100, 0, 0, 0, 0), testSnap("leaves", 200, 0, 0, 0, 0)},
		up2.ID: {testSnap("stays", 300, 0, 0, 0, 0)},
	})

	require.Len(t, plans, 2)
	require.Len(t, plans[1].Metrics, 1)
	assert.Equal(t, "stays", plans[1].Metrics[0].MemberID)
}

// A member appearing mid-season is new in that period: raw totals as diffs,
// zero power movement, no rank baseline.
func TestBuildPeriodsMidSeasonJoiner(t *testing.T) {
	season := testSeason("2025-01-01")
	up1 := testUpload(season, "2025-01-08")
	up2 := testUpload(season, "2025-01-15")

	joiner := testSnap("new", 4200, 70, 7, 0, 66000)
	plans := BuildPeriods(season, []model.Upload{up1, up2}, map[uuid.UUID][]model.MemberSnapshot{
		up1.ID: {testSnap("old", 100, 0, 0, 0, 0)},
		up2.ID: {testSnap("old", 300, 0, 0, 0, 0), joiner},
	})

	require.Len(t, plans, 2)
	require.Len(t, plans[1].Metrics, 2)

	m := plans[1].Metrics[1]
	assert.True(t, m.IsNewMember)
	assert.Equal(t, int64(4200), m.ContributionDiff)
	assert.Equal(t, "600.00", m.DailyContribution.StringFixed(2))
	assert.Zero(t, m.PowerDiff)
	assert.Nil(t, m.StartRank)
	assert.Nil(t, m.RankChange)
}

// Same inputs, same output: the property that makes full rebuilds idempotent.
func TestBuildPeriodsDeterministic(t *testing.T) {
	season := testSeason("2025-01-01")
	up1 := testUpload(season, "2025-01-08")
	up2 := testUpload(season, "2025-01-15")
	snaps := map[uuid.UUID][]model.MemberSnapshot{
		up1.ID: {testSnap("a", 100, 10, 1, 0, 500), testSnap("b", 200, 20, 2, 0, 600)},
		up2.ID: {testSnap("b", 450, 25, 2, 0, 650), testSnap("a", 300, 10, 4, 0, 480)},
	}
	uploads := []model.Upload{up1, up2}

	require.Equal(t, BuildPeriods(season, uploads, snaps), BuildPeriods(season, uploads, snaps))
}

func TestBuildPeriodsEmptySeason(t *testing.T) {
	plans := BuildPeriods(testSeason("2025-01-01"), nil, nil)
	assert.Empty(t, plans)
}
