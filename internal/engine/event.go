package engine

import (
	"github.com/google/uuid"

	"github.com/warbandhq/warband/internal/model"
)

// --------------------------------------------------------------------------
// Event diffing
// --------------------------------------------------------------------------

// BuildEventMetrics computes one metric row per member across the union of
// the before and after snapshot sets. The pair does not have to be
// temporally adjacent. Row order: after-set members in input order, then
// departed before-only members in input order.
func BuildEventMetrics(category model.Category, allianceID uuid.UUID, before, after []model.MemberSnapshot) []model.EventMetric {
	startByMember := make(map[string]model.MemberSnapshot, len(before))
	for _, s := range before {
		startByMember[s.MemberID] = s
	}
	seen := make(map[string]bool, len(after))

	metrics := make([]model.EventMetric, 0, len(before)+len(after))
	for _, end := range after {
		seen[end.MemberID] = true
		start, ok := startByMember[end.MemberID]
		if !ok {
			metrics = append(metrics, newMemberEventMetric(allianceID, end))
			continue
		}
		metrics = append(metrics, pairedEventMetric(category, allianceID, start, end))
	}
	for _, start := range before {
		if seen[start.MemberID] {
			continue
		}
		metrics = append(metrics, departedEventMetric(allianceID, start))
	}
	return metrics
}

// pairedEventMetric diffs and classifies a member present in both sets.
// Outside forbidden zones, a non-participating member counts as absent.
func pairedEventMetric(category model.Category, allianceID uuid.UUID, start, end model.MemberSnapshot) model.EventMetric {
	d := DiffSnapshots(start, end)
	cls := Classify(category, d)
	startID := start.ID
	endID := end.ID

	return model.EventMetric{
		AllianceID:       allianceID,
		MemberID:         end.MemberID,
		MemberName:       end.MemberName,
		StartSnapshotID:  &startID,
		EndSnapshotID:    &endID,
		ContributionDiff: d.Contribution,
		MeritDiff:        d.Merit,
		AssistDiff:       d.Assist,
		DonationDiff:     d.Donation,
		PowerDiff:        d.Power,
		Participated:     cls.Participated,
		Violated:         cls.Violated,
		IsAbsent:         category != model.CategoryForbidden && !cls.Participated,
		GroupName:        end.GroupName,
		EndPower:         end.PowerValue,
	}
}

// newMemberEventMetric builds the row for a member who joined between the
// two snapshots. Zero diffs: there is no baseline to measure against.
func newMemberEventMetric(allianceID uuid.UUID, end model.MemberSnapshot) model.EventMetric {
	endID := end.ID
	return model.EventMetric{
		AllianceID:    allianceID,
		MemberID:      end.MemberID,
		MemberName:    end.MemberName,
		EndSnapshotID: &endID,
		IsNewMember:   true,
		GroupName:     end.GroupName,
		EndPower:      end.PowerValue,
	}
}

// departedEventMetric builds the row for a member present only before the
// event. Display fields carry the last known snapshot values.
func departedEventMetric(allianceID uuid.UUID, start model.MemberSnapshot) model.EventMetric {
	startID := start.ID
	return model.EventMetric{
		AllianceID:      allianceID,
		MemberID:        start.MemberID,
		MemberName:      start.MemberName,
		StartSnapshotID: &startID,
		IsAbsent:        true,
		GroupName:       start.GroupName,
		EndPower:        start.PowerValue,
	}
}
