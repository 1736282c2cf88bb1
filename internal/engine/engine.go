// Package engine implements the snapshot diff and metrics computation core:
// period construction from ordered uploads, event diffing between arbitrary
// snapshot pairs, and the aggregation of per-member diff records into
// summaries, group rollups, and rankings.
//
// Everything in this package is pure computation over in-memory values.
// Snapshot retrieval and persistence live in the season and event packages;
// the engine never touches the database and never blocks.
package engine

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/warbandhq/warband/internal/model"
)

// DefaultTopN is the ranking list length used when a caller passes n <= 0.
const DefaultTopN = 5

// UnassignedGroup is the rollup bucket for members without a group name.
const UnassignedGroup = "unassigned"

// --------------------------------------------------------------------------
// Snapshot diffing
// --------------------------------------------------------------------------

// Diff is the per-member movement between two snapshots. Cumulative fields
// are clamped at zero; Power is signed.
type Diff struct {
	Contribution int64
	Merit        int64
	Assist       int64
	Donation     int64
	Power        int64
}

// DiffSnapshots computes the movement from before to after. Negative
// cumulative movement (corrupted or out-of-order source rows) clamps to
// zero rather than erroring.
func DiffSnapshots(before, after model.MemberSnapshot) Diff {
	return Diff{
		Contribution: clampZero(after.TotalContribution - before.TotalContribution),
		Merit:        clampZero(after.TotalMerit - before.TotalMerit),
		Assist:       clampZero(after.TotalAssist - before.TotalAssist),
		Donation:     clampZero(after.TotalDonation - before.TotalDonation),
		Power:        after.PowerValue - before.PowerValue,
	}
}

func clampZero(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// --------------------------------------------------------------------------
// Category classification
// --------------------------------------------------------------------------

// Classification is the category-dependent reading of one member's diff.
type Classification struct {
	Participated bool
	Violated     bool
}

// Classify applies the category participation predicate to a diff.
//
//	battle:    participated iff merit gained
//	siege:     participated iff contribution or assists gained
//	forbidden: no participation concept; violated iff power gained
func Classify(category model.Category, d Diff) Classification {
	switch category {
	case model.CategoryBattle:
		return Classification{Participated: d.Merit > 0}
	case model.CategorySiege:
		return Classification{Participated: d.Contribution > 0 || d.Assist > 0}
	case model.CategoryForbidden:
		return Classification{Violated: d.Power > 0}
	}
	// Category values are produced only by model.ParseCategory.
	panic(fmt.Sprintf("engine: classify called with invalid category %q", category))
}

// --------------------------------------------------------------------------
// Shared numeric helpers
// --------------------------------------------------------------------------

// dailyRate divides a cumulative diff by the period length and quantizes to
// two decimal places.
func dailyRate(diff int64, days int) decimal.Decimal {
	return decimal.NewFromInt(diff).DivRound(decimal.NewFromInt(int64(days)), 2)
}

// avgOver divides a total by a count and quantizes to two decimal places.
// Zero count yields zero.
func avgOver(total int64, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(total).DivRound(decimal.NewFromInt(int64(count)), 2)
}

// ratePercent computes participated/eligible as a percentage rounded to one
// decimal place, guarding the denominator at one.
func ratePercent(participated, eligible int) float64 {
	if eligible < 1 {
		eligible = 1
	}
	return math.Round(float64(participated)/float64(eligible)*1000) / 10
}
