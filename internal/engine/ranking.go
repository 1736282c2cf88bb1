package engine

import (
	"fmt"
	"sort"

	"github.com/warbandhq/warband/internal/model"
)

// --------------------------------------------------------------------------
// Top-N rankings
// --------------------------------------------------------------------------

// Ranking is one member's entry in a category top list.
type Ranking struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	GroupName  string `json:"group_name,omitempty"`
	Value      int64  `json:"value"`
}

// TopLists holds the category-appropriate rankings for an event. Battle
// fills TopMembers, siege fills the contributor and assister lists, and
// forbidden fills Violators.
type TopLists struct {
	TopMembers      []Ranking `json:"top_members,omitempty"`
	TopContributors []Ranking `json:"top_contributors,omitempty"`
	TopAssisters    []Ranking `json:"top_assisters,omitempty"`
	Violators       []Ranking `json:"violators,omitempty"`
}

// TopN builds the ranking lists for an event. Sorting is stable: members
// with equal scores keep their input order. n <= 0 falls back to
// DefaultTopN.
func TopN(category model.Category, records []model.EventMetric, n int) TopLists {
	if n <= 0 {
		n = DefaultTopN
	}
	switch category {
	case model.CategoryBattle:
		return TopLists{
			TopMembers: rankBy(records, n, func(m model.EventMetric) (int64, bool) {
				return m.MeritDiff, m.Participated
			}),
		}
	case model.CategorySiege:
		return TopLists{
			TopContributors: rankBy(records, n, func(m model.EventMetric) (int64, bool) {
				return m.ContributionDiff, m.Participated && m.ContributionDiff > 0
			}),
			TopAssisters: rankBy(records, n, func(m model.EventMetric) (int64, bool) {
				return m.AssistDiff, m.Participated && m.AssistDiff > 0
			}),
		}
	case model.CategoryForbidden:
		return TopLists{
			Violators: rankBy(records, n, func(m model.EventMetric) (int64, bool) {
				return m.PowerDiff, m.Violated
			}),
		}
	}
	panic("engine: topn called with invalid category " + string(category))
}

// rankBy filters records through include, sorts descending by value with
// input order preserved on ties, and truncates to n entries.
func rankBy(records []model.EventMetric, n int, include func(model.EventMetric) (int64, bool)) []Ranking {
	ranked := make([]Ranking, 0, len(records))
	for _, m := range records {
		v, ok := include(m)
		if !ok {
			continue
		}
		ranked = append(ranked, Ranking{
			MemberID:   m.MemberID,
			MemberName: m.MemberName,
			GroupName:  m.GroupName,
			Value:      v,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Value > ranked[j].Value })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// --------------------------------------------------------------------------
// Score distribution
// --------------------------------------------------------------------------

// Bin is one bucket of an event score histogram.
type Bin struct {
	Label string `json:"label"`
	Lo    int64  `json:"lo"`
	Hi    int64  `json:"hi"`
	Count int    `json:"count"`
}

// DistributionBins buckets values into up to binCount equal-width integer
// ranges spanning min..max. Returns nil for empty input.
func DistributionBins(values []int64, binCount int) []Bin {
	if len(values) == 0 || binCount <= 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	span := hi - lo + 1
	width := span / int64(binCount)
	if span%int64(binCount) != 0 {
		width++
	}
	if width < 1 {
		width = 1
	}

	nbins := int((span + width - 1) / width)
	bins := make([]Bin, nbins)
	for i := range bins {
		blo := lo + int64(i)*width
		bhi := blo + width - 1
		if bhi > hi {
			bhi = hi
		}
		bins[i] = Bin{Label: fmt.Sprintf("%d-%d", blo, bhi), Lo: blo, Hi: bhi}
	}
	for _, v := range values {
		bins[(v-lo)/width].Count++
	}
	return bins
}
