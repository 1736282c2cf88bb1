package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warbandhq/warband/internal/model"
)

func metricByMember(t *testing.T, metrics []model.EventMetric, memberID string) model.EventMetric {
	t.Helper()
	for _, m := range metrics {
		if m.MemberID == memberID {
			return m
		}
	}
	t.Fatalf("no metric for member %s", memberID)
	return model.EventMetric{}
}

func TestBuildEventMetricsMembershipUnion(t *testing.T) {
	alliance := uuid.New()
	before := []model.MemberSnapshot{
		testSnap("stays", 1000, 50, 5, 0, 40000),
		testSnap("departs", 2000, 80, 8, 0, 45000),
	}
	after := []model.MemberSnapshot{
		testSnap("stays", 1500, 90, 6, 0, 41000),
		testSnap("joins", 300, 10, 1, 0, 30000),
	}

	metrics := BuildEventMetrics(model.CategoryBattle, alliance, before, after)
	require.Len(t, metrics, 3)

	stays := metricByMember(t, metrics, "stays")
	assert.Equal(t, int64(500), stays.ContributionDiff)
	assert.Equal(t, int64(40), stays.MeritDiff)
	assert.Equal(t, int64(1000), stays.PowerDiff)
	assert.True(t, stays.Participated)
	assert.False(t, stays.IsAbsent)
	assert.False(t, stays.IsNewMember)

	joins := metricByMember(t, metrics, "joins")
	assert.True(t, joins.IsNewMember)
	assert.False(t, joins.Participated)
	assert.False(t, joins.IsAbsent)
	assert.Zero(t, joins.ContributionDiff)
	assert.Zero(t, joins.MeritDiff)
	assert.Zero(t, joins.PowerDiff)

	departs := metricByMember(t, metrics, "departs")
	assert.True(t, departs.IsAbsent)
	assert.False(t, departs.Participated)
	assert.False(t, departs.IsNewMember)
	assert.Zero(t, departs.ContributionDiff)
	assert.Zero(t, departs.PowerDiff)
}

// Present members who did nothing count as absent in battle and siege
// events, but never in forbidden zones.
func TestBuildEventMetricsAbsenceByCategory(t *testing.T) {
	alliance := uuid.New()
	before := []model.MemberSnapshot{testSnap("idle", 1000, 50, 5, 0, 40000)}
	after := []model.MemberSnapshot{testSnap("idle", 1000, 50, 5, 0, 40000)}

	battle := BuildEventMetrics(model.CategoryBattle, alliance, before, after)
	require.Len(t, battle, 1)
	assert.True(t, battle[0].IsAbsent)

	forbidden := BuildEventMetrics(model.CategoryForbidden, alliance, before, after)
	require.Len(t, forbidden, 1)
	assert.False(t, forbidden[0].IsAbsent)
	assert.False(t, forbidden[0].Violated)
}

func TestBuildEventMetricsForbiddenViolation(t *testing.T) {
	alliance := uuid.New()
	before := []model.MemberSnapshot{
		testSnap("grower", 1000, 0, 0, 0, 40000),
		testSnap("shrinker", 1000, 0, 0, 0, 40000),
	}
	after := []model.MemberSnapshot{
		testSnap("grower", 1000, 0, 0, 0, 43000),
		testSnap("shrinker", 1000, 0, 0, 0, 38000),
	}

	metrics := BuildEventMetrics(model.CategoryForbidden, alliance, before, after)
	require.Len(t, metrics, 2)

	grower := metricByMember(t, metrics, "grower")
	assert.True(t, grower.Violated)
	assert.Equal(t, int64(3000), grower.PowerDiff)

	shrinker := metricByMember(t, metrics, "shrinker")
	assert.False(t, shrinker.Violated)
	assert.Equal(t, int64(-2000), shrinker.PowerDiff)
}

// Snapshot pairs may be out of order or corrupted; cumulative diffs clamp
// instead of going negative.
func TestBuildEventMetricsClampsCumulativeFields(t *testing.T) {
	alliance := uuid.New()
	before := []model.MemberSnapshot{testSnap("m", 5000, 100, 10, 5, 40000)}
	after := []model.MemberSnapshot{testSnap("m", 4000, 90, 5, 0, 39000)}

	metrics := BuildEventMetrics(model.CategorySiege, alliance, before, after)
	require.Len(t, metrics, 1)

	m := metrics[0]
	assert.Zero(t, m.ContributionDiff)
	assert.Zero(t, m.MeritDiff)
	assert.Zero(t, m.AssistDiff)
	assert.Zero(t, m.DonationDiff)
	assert.Equal(t, int64(-1000), m.PowerDiff, "power diff stays signed")
	assert.False(t, m.Participated)
}

// Reprocessing recomputes from the same snapshots, so the builder must give
// identical output for identical input.
func TestBuildEventMetricsDeterministic(t *testing.T) {
	alliance := uuid.New()
	before := []model.MemberSnapshot{
		testSnap("a", 100, 10, 1, 0, 500),
		testSnap("b", 200, 20, 2, 0, 600),
	}
	after := []model.MemberSnapshot{
		testSnap("b", 450, 25, 2, 0, 650),
		testSnap("c", 50, 5, 0, 0, 400),
	}

	require.Equal(t,
		BuildEventMetrics(model.CategorySiege, alliance, before, after),
		BuildEventMetrics(model.CategorySiege, alliance, before, after))
}
