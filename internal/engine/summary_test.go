package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warbandhq/warband/internal/model"
)

func TestSummarizeBattle(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", MemberName: "Ash", Participated: true, MeritDiff: 50000, ContributionDiff: 100},
		{MemberID: "b", MemberName: "Borg", Participated: true, MeritDiff: 72000, ContributionDiff: 300},
		{MemberID: "c", MemberName: "Cid", IsAbsent: true},
	}

	s := Summarize(model.CategoryBattle, records)

	assert.Equal(t, 3, s.TotalMembers)
	assert.Equal(t, 2, s.ParticipatedCount)
	assert.Equal(t, 1, s.AbsentCount)
	assert.Equal(t, 0, s.NewMemberCount)
	assert.Equal(t, 66.7, s.ParticipationRate)

	require.NotNil(t, s.MVP)
	assert.Equal(t, "Borg", s.MVP.MemberName)
	assert.Equal(t, int64(72000), s.MVP.Value)

	assert.Equal(t, int64(122000), s.TotalMerit)
	assert.Equal(t, "61000.00", s.AvgMerit.StringFixed(2))
	assert.Equal(t, []string{"Ash", "Borg"}, s.Participants)
	assert.Equal(t, []string{"Cid"}, s.AbsentMembers)
}

// Totals only count participating members, so a present-but-idle member's
// other counters stay out of the aggregate.
func TestSummarizeTotalsOverParticipantsOnly(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", Participated: true, MeritDiff: 100, ContributionDiff: 500},
		{MemberID: "b", IsAbsent: true, ContributionDiff: 900}, // no merit, so battle says idle
	}

	s := Summarize(model.CategoryBattle, records)
	assert.Equal(t, int64(500), s.TotalContribution)
	assert.Equal(t, int64(100), s.TotalMerit)
}

func TestSummarizeBattleNoMVPWithoutPositiveMerit(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", IsAbsent: true},
		{MemberID: "b", IsAbsent: true},
	}
	s := Summarize(model.CategoryBattle, records)
	assert.Nil(t, s.MVP)
	assert.Equal(t, 0.0, s.ParticipationRate)
}

// Siege crowns top contributor and top assister independently; one member
// can hold both.
func TestSummarizeSiegeDualMVPs(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", MemberName: "Ash", Participated: true, ContributionDiff: 900, AssistDiff: 12},
		{MemberID: "b", MemberName: "Borg", Participated: true, ContributionDiff: 400, AssistDiff: 3},
	}

	s := Summarize(model.CategorySiege, records)
	require.NotNil(t, s.ContributionMVP)
	require.NotNil(t, s.AssistMVP)
	assert.Equal(t, "Ash", s.ContributionMVP.MemberName)
	assert.Equal(t, "Ash", s.AssistMVP.MemberName)
	assert.Equal(t, int64(900), s.ContributionMVP.Value)
	assert.Equal(t, int64(12), s.AssistMVP.Value)
	assert.Nil(t, s.MVP)
}

func TestSummarizeForbidden(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", Violated: true, PowerDiff: 3000},
		{MemberID: "b", PowerDiff: -200},
		{MemberID: "c", Violated: true, PowerDiff: 50},
	}

	s := Summarize(model.CategoryForbidden, records)
	assert.Equal(t, 2, s.ViolatorCount)
	assert.Equal(t, 0, s.ParticipatedCount)
	assert.Equal(t, 0.0, s.ParticipationRate)
	assert.Nil(t, s.MVP)
	assert.Zero(t, s.TotalContribution)
}

// A roster of nothing but new members has no eligible denominator; the rate
// reports 0.0 instead of dividing by zero.
func TestSummarizeAllNewMembers(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", IsNewMember: true},
		{MemberID: "b", IsNewMember: true},
	}

	s := Summarize(model.CategoryBattle, records)
	assert.Equal(t, 2, s.NewMemberCount)
	assert.Equal(t, 0.0, s.ParticipationRate)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(model.CategorySiege, nil)
	assert.Zero(t, s.TotalMembers)
	assert.Equal(t, 0.0, s.ParticipationRate)
	assert.NotNil(t, s.Participants)
	assert.NotNil(t, s.AbsentMembers)
	assert.Empty(t, s.Participants)
}

func TestSummarizeRateStaysInBounds(t *testing.T) {
	records := []model.EventMetric{
		{MemberID: "a", Participated: true, MeritDiff: 1},
		{MemberID: "b", Participated: true, MeritDiff: 1},
		{MemberID: "c", IsNewMember: true},
	}

	s := Summarize(model.CategoryBattle, records)
	assert.GreaterOrEqual(t, s.ParticipationRate, 0.0)
	assert.LessOrEqual(t, s.ParticipationRate, 100.0)
	assert.Equal(t, 100.0, s.ParticipationRate, "two of two eligible members took part")
}
