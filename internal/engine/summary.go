package engine

import (
	"github.com/shopspring/decimal"

	"github.com/warbandhq/warband/internal/model"
)

// --------------------------------------------------------------------------
// Event summaries
// --------------------------------------------------------------------------

// MVP identifies the top performer for a category metric.
type MVP struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	Value      int64  `json:"value"`
}

// EventSummary is the event-wide aggregate over all metric rows. Totals and
// averages cover participating members only; counts cover everyone.
type EventSummary struct {
	Category          model.Category `json:"category"`
	TotalMembers      int            `json:"total_members"`
	ParticipatedCount int            `json:"participated_count"`
	AbsentCount       int            `json:"absent_count"`
	NewMemberCount    int            `json:"new_member_count"`
	ViolatorCount     int            `json:"violator_count"`
	ParticipationRate float64        `json:"participation_rate"`

	TotalContribution int64 `json:"total_contribution"`
	TotalMerit        int64 `json:"total_merit"`
	TotalAssist       int64 `json:"total_assist"`
	TotalDonation     int64 `json:"total_donation"`
	TotalPowerChange  int64 `json:"total_power_change"`

	AvgContribution decimal.Decimal `json:"avg_contribution"`
	AvgMerit        decimal.Decimal `json:"avg_merit"`
	AvgAssist       decimal.Decimal `json:"avg_assist"`
	AvgDonation     decimal.Decimal `json:"avg_donation"`

	MVP             *MVP `json:"mvp,omitempty"`
	ContributionMVP *MVP `json:"contribution_mvp,omitempty"`
	AssistMVP       *MVP `json:"assist_mvp,omitempty"`

	Participants  []string `json:"participants"`
	AbsentMembers []string `json:"absent_members"`
}

// Summarize rolls per-member event records into an EventSummary.
//
// The participation rate divides participants by eligible members, where
// eligibility excludes new members (no baseline means no fair expectation).
// The denominator is floored at one, so the rate is always within [0, 100]
// and 0.0 when nobody was eligible.
func Summarize(category model.Category, records []model.EventMetric) EventSummary {
	s := EventSummary{
		Category:      category,
		TotalMembers:  len(records),
		Participants:  []string{},
		AbsentMembers: []string{},
	}

	for _, m := range records {
		if m.IsNewMember {
			s.NewMemberCount++
		}
		if m.IsAbsent {
			s.AbsentCount++
			s.AbsentMembers = append(s.AbsentMembers, m.MemberName)
		}
		if m.Violated {
			s.ViolatorCount++
		}
		if !m.Participated {
			continue
		}
		s.ParticipatedCount++
		s.Participants = append(s.Participants, m.MemberName)
		s.TotalContribution += m.ContributionDiff
		s.TotalMerit += m.MeritDiff
		s.TotalAssist += m.AssistDiff
		s.TotalDonation += m.DonationDiff
		s.TotalPowerChange += m.PowerDiff
	}

	s.ParticipationRate = ratePercent(s.ParticipatedCount, s.TotalMembers-s.NewMemberCount)
	s.AvgContribution = avgOver(s.TotalContribution, s.ParticipatedCount)
	s.AvgMerit = avgOver(s.TotalMerit, s.ParticipatedCount)
	s.AvgAssist = avgOver(s.TotalAssist, s.ParticipatedCount)
	s.AvgDonation = avgOver(s.TotalDonation, s.ParticipatedCount)

	switch category {
	case model.CategoryBattle:
		s.MVP = topParticipant(records, func(m model.EventMetric) int64 { return m.MeritDiff })
	case model.CategorySiege:
		s.ContributionMVP = topParticipant(records, func(m model.EventMetric) int64 { return m.ContributionDiff })
		s.AssistMVP = topParticipant(records, func(m model.EventMetric) int64 { return m.AssistDiff })
	case model.CategoryForbidden:
		// No MVP concept; violator count carries the headline.
	}

	return s
}

// topParticipant returns the participating member with the highest positive
// value, or nil when nobody scored. Ties keep the first record seen.
func topParticipant(records []model.EventMetric, value func(model.EventMetric) int64) *MVP {
	var best *MVP
	for _, m := range records {
		if !m.Participated {
			continue
		}
		v := value(m)
		if v <= 0 {
			continue
		}
		if best == nil || v > best.Value {
			best = &MVP{MemberID: m.MemberID, MemberName: m.MemberName, Value: v}
		}
	}
	return best
}
