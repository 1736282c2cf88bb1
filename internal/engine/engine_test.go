package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warbandhq/warband/internal/model"
)

// testSnap builds a snapshot row with the cumulative counters set. Helpers
// below tweak the rest.
func testSnap(memberID string, contribution, merit, assist, donation, power int64) model.MemberSnapshot {
	return model.MemberSnapshot{
		ID:                uuid.New(),
		UploadID:          uuid.New(),
		AllianceID:        uuid.New(),
		MemberID:          memberID,
		MemberName:        "member " + memberID,
		ContributionRank:  1,
		TotalContribution: contribution,
		TotalMerit:        merit,
		TotalAssist:       assist,
		TotalDonation:     donation,
		PowerValue:        power,
	}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDiffSnapshots(t *testing.T) {
	tests := []struct {
		name   string
		before model.MemberSnapshot
		after  model.MemberSnapshot
		want   Diff
	}{
		{
			name:   "normal growth",
			before: testSnap("m1", 1000, 200, 30, 4, 50000),
			after:  testSnap("m1", 1500, 260, 45, 10, 52000),
			want:   Diff{Contribution: 500, Merit: 60, Assist: 15, Donation: 6, Power: 2000},
		},
		{
			name:   "negative cumulative movement clamps to zero",
			before: testSnap("m1", 1000, 200, 30, 4, 50000),
			after:  testSnap("m1", 800, 100, 10, 0, 50000),
			want:   Diff{Contribution: 0, Merit: 0, Assist: 0, Donation: 0, Power: 0},
		},
		{
			name:   "power drop stays signed",
			before: testSnap("m1", 1000, 200, 30, 4, 50000),
			after:  testSnap("m1", 1000, 200, 30, 4, 48000),
			want:   Diff{Power: -2000},
		},
		{
			name:   "no movement",
			before: testSnap("m1", 1000, 200, 30, 4, 50000),
			after:  testSnap("m1", 1000, 200, 30, 4, 50000),
			want:   Diff{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiffSnapshots(tt.before, tt.after))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		category model.Category
		diff     Diff
		want     Classification
	}{
		{"battle with merit", model.CategoryBattle, Diff{Merit: 10}, Classification{Participated: true}},
		{"battle without merit", model.CategoryBattle, Diff{Contribution: 500, Assist: 5}, Classification{}},
		{"siege with contribution only", model.CategorySiege, Diff{Contribution: 500}, Classification{Participated: true}},
		{"siege with assist only", model.CategorySiege, Diff{Assist: 5}, Classification{Participated: true}},
		{"siege with neither", model.CategorySiege, Diff{Merit: 900}, Classification{}},
		{"forbidden never participates", model.CategoryForbidden, Diff{Contribution: 500, Merit: 10, Assist: 5}, Classification{}},
		{"forbidden power gain violates", model.CategoryForbidden, Diff{Power: 1}, Classification{Violated: true}},
		{"forbidden power drop is clean", model.CategoryForbidden, Diff{Power: -500}, Classification{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.category, tt.diff))
		})
	}
}

// The same diff reads differently per category: assists count for siege but
// not battle.
func TestClassifyCategoryContrast(t *testing.T) {
	d := Diff{Contribution: 0, Merit: 0, Assist: 5}
	assert.True(t, Classify(model.CategorySiege, d).Participated)
	assert.False(t, Classify(model.CategoryBattle, d).Participated)
}

func TestClassifyPanicsOnInvalidCategory(t *testing.T) {
	require.Panics(t, func() { Classify(model.Category("raid"), Diff{}) })
}

func TestRatePercent(t *testing.T) {
	assert.Equal(t, 50.0, ratePercent(1, 2))
	assert.Equal(t, 66.7, ratePercent(2, 3))
	assert.Equal(t, 100.0, ratePercent(5, 5))
	assert.Equal(t, 0.0, ratePercent(0, 0))
	assert.Equal(t, 0.0, ratePercent(0, -3))
}
