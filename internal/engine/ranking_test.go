package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warbandhq/warband/internal/model"
)

func TestTopNBattle(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", Participated: true, MeritDiff: 100},
		{MemberID: "b", Participated: true, MeritDiff: 900},
		{MemberID: "c", IsAbsent: true},
		{MemberID: "d", Participated: true, MeritDiff: 500},
	}

	lists := TopN(model.CategoryBattle, records, 2)
	require.Len(t, lists.TopMembers, 2)
	assert.Equal(t, "b", lists.TopMembers[0].MemberID)
	assert.Equal(t, "d", lists.TopMembers[1].MemberID)
	assert.Empty(t, lists.Violators)
}

// Members with equal scores keep their input order.
func TestTopNStableOnTies(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "first", Participated: true, MeritDiff: 500},
		{MemberID: "second", Participated: true, MeritDiff: 500},
		{MemberID: "third", Participated: true, MeritDiff: 500},
	}

	lists := TopN(model.CategoryBattle, records, 10)
	require.Len(t, lists.TopMembers, 3)
	assert.Equal(t, "first", lists.TopMembers[0].MemberID)
	assert.Equal(t, "second", lists.TopMembers[1].MemberID)
	assert.Equal(t, "third", lists.TopMembers[2].MemberID)
}

func TestTopNSiegeDualLists(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", Participated: true, ContributionDiff: 400, AssistDiff: 0},
		{MemberID: "b", Participated: true, ContributionDiff: 0, AssistDiff: 9},
		{MemberID: "c", Participated: true, ContributionDiff: 700, AssistDiff: 3},
	}

	lists := TopN(model.CategorySiege, records, 5)
	require.Len(t, lists.TopContributors, 2, "zero contribution stays off the contributor list")
	assert.Equal(t, "c", lists.TopContributors[0].MemberID)
	assert.Equal(t, "a", lists.TopContributors[1].MemberID)

	require.Len(t, lists.TopAssisters, 2)
	assert.Equal(t, "b", lists.TopAssisters[0].MemberID)
	assert.Equal(t, "c", lists.TopAssisters[1].MemberID)
}

func TestTopNForbiddenViolators(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", Violated: true, PowerDiff: 100},
		{MemberID: "b", PowerDiff: -50},
		{MemberID: "c", Violated: true, PowerDiff: 900},
	}

	lists := TopN(model.CategoryForbidden, records, 5)
	require.Len(t, lists.Violators, 2)
	assert.Equal(t, "c", lists.Violators[0].MemberID)
	assert.Equal(t, int64(900), lists.Violators[0].Value)
}

func TestTopNDefaultsN(t *testing.T) {
	records := make([]model.EventMetric, 0, 8)
	for i := 0; i < 8; i++ {
		records = append(records, model.EventMetric{
			MemberID: string(rune('a' + i)), Participated: true, MeritDiff: int64(i + 1),
		})
	}

	lists := TopN(model.CategoryBattle, records, 0)
	assert.Len(t, lists.TopMembers, DefaultTopN)
}

func TestDistributionBins(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, DistributionBins(nil, 5))
	})

	t.Run("single value", func(t *testing.T) {
		bins := DistributionBins([]int64{42}, 5)
		require.Len(t, bins, 1)
		assert.Equal(t, "42-42", bins[0].Label)
		assert.Equal(t, 1, bins[0].Count)
	})

	t.Run("even spread", func(t *testing.T) {
		bins := DistributionBins([]int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 2)
		require.Len(t, bins, 2)
		assert.Equal(t, "0-4", bins[0].Label)
		assert.Equal(t, 5, bins[0].Count)
		assert.Equal(t, "5-9", bins[1].Label)
		assert.Equal(t, 5, bins[1].Count)
	})

	t.Run("all values land in a bin", func(t *testing.T) {
		values := []int64{3, 17, 17, 40, 99, 1000}
		bins := DistributionBins(values, 4)
		total := 0
		for _, b := range bins {
			total += b.Count
		}
		assert.Equal(t, len(values), total)
	})
}
