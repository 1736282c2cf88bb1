package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/warbandhq/warband/internal/model"
)

// --------------------------------------------------------------------------
// Group rollups
// --------------------------------------------------------------------------

// BattleGroupStats aggregates merit over a group's participants.
type BattleGroupStats struct {
	MeritTotal int64           `json:"merit_total"`
	MeritAvg   decimal.Decimal `json:"merit_avg"`
	MeritMax   int64           `json:"merit_max"`
	MeritMin   int64           `json:"merit_min"`
}

// SiegeGroupStats aggregates contribution and assists over a group's
// participants. Combined bounds cover contribution+assist per member.
type SiegeGroupStats struct {
	ContributionTotal int64           `json:"contribution_total"`
	ContributionAvg   decimal.Decimal `json:"contribution_avg"`
	AssistTotal       int64           `json:"assist_total"`
	AssistAvg         decimal.Decimal `json:"assist_avg"`
	CombinedMax       int64           `json:"combined_max"`
	CombinedMin       int64           `json:"combined_min"`
}

// ForbiddenGroupStats counts a group's violators.
type ForbiddenGroupStats struct {
	ViolatorCount int `json:"violator_count"`
}

// GroupStat is one group's aggregate for an event. Exactly one of the
// category blocks is set, matching the event's category.
type GroupStat struct {
	GroupName         string  `json:"group_name"`
	MemberCount       int     `json:"member_count"`
	ParticipatedCount int     `json:"participated_count"`
	ParticipationRate float64 `json:"participation_rate"`

	Battle    *BattleGroupStats    `json:"battle,omitempty"`
	Siege     *SiegeGroupStats     `json:"siege,omitempty"`
	Forbidden *ForbiddenGroupStats `json:"forbidden,omitempty"`
}

// GroupRollup partitions event records by group name and aggregates each
// partition. Members without a group fall into the "unassigned" bucket; new
// members are excluded from eligibility everywhere. Groups come back sorted
// descending by the category's primary metric; groups that tie keep their
// first-seen order.
func GroupRollup(category model.Category, records []model.EventMetric) []GroupStat {
	order := []string{}
	byGroup := map[string][]model.EventMetric{}
	for _, m := range records {
		if m.IsNewMember {
			continue
		}
		name := m.GroupName
		if name == "" {
			name = UnassignedGroup
		}
		if _, ok := byGroup[name]; !ok {
			order = append(order, name)
		}
		byGroup[name] = append(byGroup[name], m)
	}

	stats := make([]GroupStat, 0, len(order))
	for _, name := range order {
		stats = append(stats, groupStat(category, name, byGroup[name]))
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return groupPrimary(category, stats[i]) > groupPrimary(category, stats[j])
	})
	return stats
}

// groupStat aggregates one group's eligible records.
func groupStat(category model.Category, name string, members []model.EventMetric) GroupStat {
	g := GroupStat{GroupName: name, MemberCount: len(members)}
	for _, m := range members {
		if m.Participated {
			g.ParticipatedCount++
		}
	}
	g.ParticipationRate = ratePercent(g.ParticipatedCount, g.MemberCount)

	switch category {
	case model.CategoryBattle:
		g.Battle = battleGroupStats(members)
	case model.CategorySiege:
		g.Siege = siegeGroupStats(members)
	case model.CategoryForbidden:
		violators := 0
		for _, m := range members {
			if m.Violated {
				violators++
			}
		}
		g.Forbidden = &ForbiddenGroupStats{ViolatorCount: violators}
	}
	return g
}

func battleGroupStats(members []model.EventMetric) *BattleGroupStats {
	s := &BattleGroupStats{}
	first := true
	for _, m := range members {
		if !m.Participated {
			continue
		}
		v := m.MeritDiff
		s.MeritTotal += v
		if first || v > s.MeritMax {
			s.MeritMax = v
		}
		if first || v < s.MeritMin {
			s.MeritMin = v
		}
		first = false
	}
	participated := 0
	for _, m := range members {
		if m.Participated {
			participated++
		}
	}
	s.MeritAvg = avgOver(s.MeritTotal, participated)
	return s
}

func siegeGroupStats(members []model.EventMetric) *SiegeGroupStats {
	s := &SiegeGroupStats{}
	participated := 0
	first := true
	for _, m := range members {
		if !m.Participated {
			continue
		}
		participated++
		s.ContributionTotal += m.ContributionDiff
		s.AssistTotal += m.AssistDiff
		combined := m.ContributionDiff + m.AssistDiff
		if first || combined > s.CombinedMax {
			s.CombinedMax = combined
		}
		if first || combined < s.CombinedMin {
			s.CombinedMin = combined
		}
		first = false
	}
	s.ContributionAvg = avgOver(s.ContributionTotal, participated)
	s.AssistAvg = avgOver(s.AssistTotal, participated)
	return s
}

// groupPrimary is the sort key for group ordering.
func groupPrimary(category model.Category, g GroupStat) int64 {
	switch category {
	case model.CategoryBattle:
		return g.Battle.MeritTotal
	case model.CategorySiege:
		return g.Siege.ContributionTotal + g.Siege.AssistTotal
	case model.CategoryForbidden:
		return int64(g.Forbidden.ViolatorCount)
	}
	panic("engine: group primary called with invalid category " + string(category))
}
