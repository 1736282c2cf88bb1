package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warbandhq/warband/internal/model"
)

func TestGroupRollupBattle(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", GroupName: "wolves", Participated: true, MeritDiff: 100},
		{MemberID: "b", GroupName: "wolves", Participated: true, MeritDiff: 300},
		{MemberID: "c", GroupName: "wolves", IsAbsent: true},
		{MemberID: "d", GroupName: "bears", Participated: true, MeritDiff: 900},
	}

	stats := GroupRollup(model.CategoryBattle, records)
	require.Len(t, stats, 2)

	// Bears outscored wolves in total merit, so they sort first.
	bears := stats[0]
	assert.Equal(t, "bears", bears.GroupName)
	require.NotNil(t, bears.Battle)
	assert.Equal(t, int64(900), bears.Battle.MeritTotal)

	wolves := stats[1]
	assert.Equal(t, "wolves", wolves.GroupName)
	assert.Equal(t, 3, wolves.MemberCount)
	assert.Equal(t, 2, wolves.ParticipatedCount)
	assert.Equal(t, 66.7, wolves.ParticipationRate)
	require.NotNil(t, wolves.Battle)
	assert.Equal(t, int64(400), wolves.Battle.MeritTotal)
	assert.Equal(t, "200.00", wolves.Battle.MeritAvg.StringFixed(2))
	assert.Equal(t, int64(300), wolves.Battle.MeritMax)
	assert.Equal(t, int64(100), wolves.Battle.MeritMin)
	assert.Nil(t, wolves.Siege)
	assert.Nil(t, wolves.Forbidden)
}

func TestGroupRollupUnassignedBucket(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", Participated: true, MeritDiff: 10},
		{MemberID: "b", GroupName: "wolves", Participated: true, MeritDiff: 5},
	}

	stats := GroupRollup(model.CategoryBattle, records)
	require.Len(t, stats, 2)
	assert.Equal(t, UnassignedGroup, stats[0].GroupName)
}

func TestGroupRollupExcludesNewMembers(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", GroupName: "wolves", Participated: true, MeritDiff: 10},
		{MemberID: "b", GroupName: "wolves", IsNewMember: true},
	}

	stats := GroupRollup(model.CategoryBattle, records)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].MemberCount)
	assert.Equal(t, 100.0, stats[0].ParticipationRate)
}

// Groups with identical primary totals keep their first-seen order.
func TestGroupRollupSortIsStable(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", GroupName: "first", Participated: true, MeritDiff: 500},
		{MemberID: "b", GroupName: "second", Participated: true, MeritDiff: 500},
		{MemberID: "c", GroupName: "third", Participated: true, MeritDiff: 500},
	}

	stats := GroupRollup(model.CategoryBattle, records)
	require.Len(t, stats, 3)
	assert.Equal(t, "first", stats[0].GroupName)
	assert.Equal(t, "second", stats[1].GroupName)
	assert.Equal(t, "third", stats[2].GroupName)
}

func TestGroupRollupSiege(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", GroupName: "wolves", Participated: true, ContributionDiff: 400, AssistDiff: 10},
		{MemberID: "b", GroupName: "wolves", Participated: true, ContributionDiff: 100, AssistDiff: 40},
	}

	stats := GroupRollup(model.CategorySiege, records)
	require.Len(t, stats, 1)
	s := stats[0].Siege
	require.NotNil(t, s)
	assert.Equal(t, int64(500), s.ContributionTotal)
	assert.Equal(t, int64(50), s.AssistTotal)
	assert.Equal(t, "250.00", s.ContributionAvg.StringFixed(2))
	assert.Equal(t, "25.00", s.AssistAvg.StringFixed(2))
	assert.Equal(t, int64(410), s.CombinedMax)
	assert.Equal(t, int64(140), s.CombinedMin)
}

func TestGroupRollupForbidden(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", GroupName: "wolves", Violated: true, PowerDiff: 100},
		{MemberID: "b", GroupName: "wolves", PowerDiff: -50},
		{MemberID: "c", GroupName: "bears", Violated: true, PowerDiff: 900},
		{MemberID: "d", GroupName: "bears", Violated: true, PowerDiff: 10},
	}

	stats := GroupRollup(model.CategoryForbidden, records)
	require.Len(t, stats, 2)
	assert.Equal(t, "bears", stats[0].GroupName)
	require.NotNil(t, stats[0].Forbidden)
	assert.Equal(t, 2, stats[0].Forbidden.ViolatorCount)
	assert.Equal(t, 1, stats[1].Forbidden.ViolatorCount)
}
