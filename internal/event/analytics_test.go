package event

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warbandhq/warband/internal/model"
)

func testMetric(member string, participated, violated bool) model.EventMetric {
	return model.EventMetric{
		MemberID:     member,
		MemberName:   member,
		Participated: participated,
		Violated:     violated,
	}
}

func TestScoreValues(t *testing.T) {
	idle := testMetric("idle", false, false)

	fighter := testMetric("fighter", true, false)
	fighter.MeritDiff = 1200
	fighter.ContributionDiff = 300

	sieger := testMetric("sieger", true, false)
	sieger.ContributionDiff = 4500
	sieger.MeritDiff = 10

	violator := testMetric("violator", false, true)
	violator.PowerDiff = -80000

	tests := []struct {
		name     string
		category model.Category
		metrics  []model.EventMetric
		want     []int64
	}{
		{
			name:     "battle takes merit of participants",
			category: model.CategoryBattle,
			metrics:  []model.EventMetric{fighter, idle, sieger},
			want:     []int64{1200, 10},
		},
		{
			name:     "siege takes contribution of participants",
			category: model.CategorySiege,
			metrics:  []model.EventMetric{fighter, sieger, idle},
			want:     []int64{300, 4500},
		},
		{
			name:     "forbidden takes power change of violators",
			category: model.CategoryForbidden,
			metrics:  []model.EventMetric{violator, idle, fighter},
			want:     []int64{-80000},
		},
		{
			name:     "no qualifying members yields empty",
			category: model.CategoryForbidden,
			metrics:  []model.EventMetric{idle, fighter},
			want:     []int64{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreValues(tt.category, tt.metrics))
		})
	}
}

func TestScoreValuesPanicsOnUnknownCategory(t *testing.T) {
	require.Panics(t, func() {
		scoreValues(model.Category("raid"), nil)
	})
}

func TestProcessResultSummary(t *testing.T) {
	r := &ProcessResult{
		EventID:      uuid.MustParse("9b3e6f10-0000-0000-0000-00000000abcd"),
		Category:     model.CategorySiege,
		Members:      48,
		Participants: 41,
		Duration:     1520 * time.Millisecond,
	}
	assert.Equal(t,
		"event=9b3e6f10-0000-0000-0000-00000000abcd category=siege members=48 participants=41 duration=1.52s",
		r.Summary())
}
