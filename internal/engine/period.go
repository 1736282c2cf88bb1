package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/warbandhq/warband/internal/model"
)

// --------------------------------------------------------------------------
// Period construction
// --------------------------------------------------------------------------

// PeriodPlan pairs one computed period with its member metric rows. Row IDs
// and period linkage are zero here; the store assigns them at insert time.
type PeriodPlan struct {
	Period  model.Period
	Metrics []model.PeriodMetric
}

// BuildPeriods derives the complete period sequence for a season from its
// uploads and their snapshot rows. Deterministic: the same inputs always
// produce the same plans, which is what makes full rebuilds idempotent.
//
// The first period runs from the season start date to the first upload, and
// every member in it is new. Each later period pairs consecutive uploads.
// Windows of zero or negative length are skipped without consuming a period
// number, so materialized periods are numbered 1..n with no gaps.
func BuildPeriods(season model.Season, uploads []model.Upload, snapshots map[uuid.UUID][]model.MemberSnapshot) []PeriodPlan {
	ordered := make([]model.Upload, len(uploads))
	copy(ordered, uploads)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].SnapshotDate.Equal(ordered[j].SnapshotDate) {
			return ordered[i].SnapshotDate.Before(ordered[j].SnapshotDate)
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	plans := make([]PeriodPlan, 0, len(ordered))
	for i, up := range ordered {
		var (
			start         time.Time
			startUploadID *uuid.UUID
			before        []model.MemberSnapshot
		)
		if i == 0 {
			start = season.StartDate
		} else {
			prev := ordered[i-1]
			start = prev.SnapshotDate
			id := prev.ID
			startUploadID = &id
			before = snapshots[prev.ID]
		}

		days := wholeDays(start, up.SnapshotDate)
		if days <= 0 {
			continue
		}

		plans = append(plans, PeriodPlan{
			Period: model.Period{
				SeasonID:      season.ID,
				AllianceID:    season.AllianceID,
				StartUploadID: startUploadID,
				EndUploadID:   up.ID,
				StartDate:     start,
				EndDate:       up.SnapshotDate,
				Days:          days,
				PeriodNumber:  len(plans) + 1,
			},
			Metrics: buildPeriodMetrics(season.AllianceID, before, snapshots[up.ID], days),
		})
	}
	return plans
}

// buildPeriodMetrics computes one metric row per member of the end snapshot.
// A nil before set means every member is new (the season-opening period).
// Members present only in the before set produce no row; departures surface
// through event analytics instead.
func buildPeriodMetrics(allianceID uuid.UUID, before, after []model.MemberSnapshot, days int) []model.PeriodMetric {
	startByMember := make(map[string]model.MemberSnapshot, len(before))
	for _, s := range before {
		startByMember[s.MemberID] = s
	}

	metrics := make([]model.PeriodMetric, 0, len(after))
	for _, end := range after {
		start, ok := startByMember[end.MemberID]
		if !ok {
			metrics = append(metrics, newMemberPeriodMetric(allianceID, end, days))
			continue
		}
		metrics = append(metrics, pairedPeriodMetric(allianceID, start, end, days))
	}
	return metrics
}

// pairedPeriodMetric diffs a member present in both snapshots.
func pairedPeriodMetric(allianceID uuid.UUID, start, end model.MemberSnapshot, days int) model.PeriodMetric {
	d := DiffSnapshots(start, end)
	startID := start.ID
	startRank := start.ContributionRank
	rankChange := start.ContributionRank - end.ContributionRank

	return model.PeriodMetric{
		AllianceID:        allianceID,
		MemberID:          end.MemberID,
		MemberName:        end.MemberName,
		StartSnapshotID:   &startID,
		EndSnapshotID:     end.ID,
		ContributionDiff:  d.Contribution,
		MeritDiff:         d.Merit,
		AssistDiff:        d.Assist,
		DonationDiff:      d.Donation,
		PowerDiff:         d.Power,
		DailyContribution: dailyRate(d.Contribution, days),
		DailyMerit:        dailyRate(d.Merit, days),
		DailyAssist:       dailyRate(d.Assist, days),
		DailyDonation:     dailyRate(d.Donation, days),
		StartRank:         &startRank,
		EndRank:           end.ContributionRank,
		RankChange:        &rankChange,
		EndPower:          end.PowerValue,
		EndState:          end.State,
		EndGroup:          end.GroupName,
	}
}

// newMemberPeriodMetric builds the row for a member with no starting
// snapshot. Cumulative diffs are the raw totals; power diff stays zero
// because power is a level, not a counter, and carrying the raw value
// would inflate season power-change rollups.
func newMemberPeriodMetric(allianceID uuid.UUID, end model.MemberSnapshot, days int) model.PeriodMetric {
	return model.PeriodMetric{
		AllianceID:        allianceID,
		MemberID:          end.MemberID,
		MemberName:        end.MemberName,
		EndSnapshotID:     end.ID,
		ContributionDiff:  end.TotalContribution,
		MeritDiff:         end.TotalMerit,
		AssistDiff:        end.TotalAssist,
		DonationDiff:      end.TotalDonation,
		PowerDiff:         0,
		DailyContribution: dailyRate(end.TotalContribution, days),
		DailyMerit:        dailyRate(end.TotalMerit, days),
		DailyAssist:       dailyRate(end.TotalAssist, days),
		DailyDonation:     dailyRate(end.TotalDonation, days),
		EndRank:           end.ContributionRank,
		EndPower:          end.PowerValue,
		EndState:          end.State,
		EndGroup:          end.GroupName,
		IsNewMember:       true,
	}
}

// wholeDays returns the number of full 24 hour blocks between two instants.
func wholeDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
