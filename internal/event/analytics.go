package event

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/warbandhq/warband/internal/engine"
	"github.com/warbandhq/warband/internal/model"
)

// distributionBinCount is how many histogram buckets the analytics response
// spreads event scores across.
const distributionBinCount = 10

// Detail bundles an event with its stored metric rows; the summary is only
// present once the event has completed processing.
type Detail struct {
	Event   model.Event          `json:"event"`
	Metrics []model.EventMetric  `json:"metrics"`
	Summary *engine.EventSummary `json:"summary,omitempty"`
}

// GroupAnalytics is the full analytics view of a completed event.
type GroupAnalytics struct {
	Event        model.Event         `json:"event"`
	Summary      engine.EventSummary `json:"summary"`
	GroupStats   []engine.GroupStat  `json:"group_stats"`
	TopLists     engine.TopLists     `json:"top_lists"`
	Distribution []engine.Bin        `json:"distribution,omitempty"`
}

// Overview is one row of the alliance event list: the event plus headline
// counts. Counts stay zero for events that have not been processed.
type Overview struct {
	model.Event
	Members      int `json:"members"`
	Participants int `json:"participants"`
	Violators    int `json:"violators"`
}

// GetDetail returns an event with its metric rows.
func GetDetail(ctx context.Context, db querier, eventID uuid.UUID) (*Detail, error) {
	e, err := Get(ctx, db, eventID)
	if err != nil {
		return nil, err
	}
	metrics, err := fetchMetrics(ctx, db, eventID)
	if err != nil {
		return nil, err
	}

	d := &Detail{Event: e, Metrics: metrics}
	if e.Status == model.EventStatusCompleted {
		s := engine.Summarize(e.Category, metrics)
		d.Summary = &s
	}
	return d, nil
}

// GetSummary returns the aggregate summary of a completed event. Events that
// have not finished processing return ErrInvalidState.
func GetSummary(ctx context.Context, db querier, eventID uuid.UUID) (*engine.EventSummary, error) {
	e, err := Get(ctx, db, eventID)
	if err != nil {
		return nil, err
	}
	if e.Status != model.EventStatusCompleted {
		return nil, fmt.Errorf("event %s has no computed metrics: %w", eventID, model.ErrInvalidState)
	}
	metrics, err := fetchMetrics(ctx, db, eventID)
	if err != nil {
		return nil, err
	}
	s := engine.Summarize(e.Category, metrics)
	return &s, nil
}

// GetGroupAnalytics assembles the analytics view of a completed event:
// summary, per-group rollup, top lists, and a score distribution. topN <= 0
// falls back to the default list length.
func GetGroupAnalytics(ctx context.Context, db querier, eventID uuid.UUID, topN int) (*GroupAnalytics, error) {
	e, err := Get(ctx, db, eventID)
	if err != nil {
		return nil, err
	}
	if e.Status != model.EventStatusCompleted {
		return nil, fmt.Errorf("event %s has no computed metrics: %w", eventID, model.ErrInvalidState)
	}
	metrics, err := fetchMetrics(ctx, db, eventID)
	if err != nil {
		return nil, err
	}
	if topN <= 0 {
		topN = engine.DefaultTopN
	}

	return &GroupAnalytics{
		Event:        e,
		Summary:      engine.Summarize(e.Category, metrics),
		GroupStats:   engine.GroupRollup(e.Category, metrics),
		TopLists:     engine.TopN(e.Category, metrics, topN),
		Distribution: engine.DistributionBins(scoreValues(e.Category, metrics), distributionBinCount),
	}, nil
}

// scoreValues picks the distribution input for a category: merit gained in
// battles, contribution in sieges, power lost by forbidden-zone violators.
func scoreValues(category model.Category, metrics []model.EventMetric) []int64 {
	values := []int64{}
	switch category {
	case model.CategoryBattle:
		for _, m := range metrics {
			if m.Participated {
				values = append(values, m.MeritDiff)
			}
		}
	case model.CategorySiege:
		for _, m := range metrics {
			if m.Participated {
				values = append(values, m.ContributionDiff)
			}
		}
	case model.CategoryForbidden:
		for _, m := range metrics {
			if m.Violated {
				values = append(values, m.PowerDiff)
			}
		}
	default:
		panic(fmt.Sprintf("unhandled event category %q", category))
	}
	return values
}

// ListOverviews returns an alliance's events, newest first, each carrying
// counts aggregated from its stored metrics.
func ListOverviews(ctx context.Context, db querier, allianceID uuid.UUID) ([]Overview, error) {
	events, err := ListByAlliance(ctx, db, allianceID)
	if err != nil {
		return nil, err
	}

	type counts struct{ members, participants, violators int }
	stats := map[uuid.UUID]counts{}

	rows, err := db.Query(ctx, "event_stats_by_alliance", allianceID)
	if err != nil {
		return nil, fmt.Errorf("list event stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var c counts
		if err := rows.Scan(&id, &c.members, &c.participants, &c.violators); err != nil {
			return nil, fmt.Errorf("scan event stats: %w", err)
		}
		stats[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	overviews := make([]Overview, 0, len(events))
	for _, e := range events {
		c := stats[e.ID]
		overviews = append(overviews, Overview{
			Event:        e,
			Members:      c.members,
			Participants: c.participants,
			Violators:    c.violators,
		})
	}
	return overviews, nil
}
