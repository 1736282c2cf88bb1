package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warbandhq/warband/internal/analytics"
	"github.com/warbandhq/warband/internal/api/respond"
	"github.com/warbandhq/warband/internal/cache"
)

// GetPeriodAverages returns alliance-wide averages for one period.
// @Summary Get period averages
// @Description Returns member count, new-member count, and average daily rates for one period.
// @Tags analytics
// @Produce json
// @Param periodID path string true "Period UUID"
// @Success 200 {object} analytics.PeriodAverages
// @Failure 404 {object} respond.ErrorResponse
// @Router /periods/{periodID}/averages [get]
func (h *Handler) GetPeriodAverages(w http.ResponseWriter, r *http.Request) {
	periodID, ok := urlUUID(w, r, "periodID")
	if !ok {
		return
	}

	key := fmt.Sprintf("period:%s:averages", periodID)
	h.serveCached(w, r, key, cache.TTLAnalytics, func() (interface{}, error) {
		return analytics.GetPeriodAverages(r.Context(), h.pool, periodID)
	})
}

// GetAllianceTrend returns the alliance's period-over-period trend.
// @Summary Get alliance trend
// @Description Returns one point per period with member counts and average daily rates across the season.
// @Tags analytics
// @Produce json
// @Param seasonID path string true "Season UUID"
// @Success 200 {object} analytics.AllianceTrend
// @Failure 404 {object} respond.ErrorResponse
// @Router /seasons/{seasonID}/trend [get]
func (h *Handler) GetAllianceTrend(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := urlUUID(w, r, "seasonID")
	if !ok {
		return
	}

	key := fmt.Sprintf("season:%s:trend", seasonID)
	h.serveCached(w, r, key, cache.TTLAnalytics, func() (interface{}, error) {
		return analytics.GetAllianceTrend(r.Context(), h.pool, seasonID)
	})
}

// GetMemberTrend returns one member's period-over-period trend.
// @Summary Get member trend
// @Description Returns the member's daily rates and rank per period, alongside the alliance averages for comparison.
// @Tags analytics
// @Produce json
// @Param seasonID path string true "Season UUID"
// @Param memberID path string true "Member in-game identifier"
// @Success 200 {object} analytics.MemberTrend
// @Failure 404 {object} respond.ErrorResponse
// @Router /seasons/{seasonID}/members/{memberID}/trend [get]
func (h *Handler) GetMemberTrend(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := urlUUID(w, r, "seasonID")
	if !ok {
		return
	}
	memberID := chi.URLParam(r, "memberID")
	if memberID == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "memberID is required")
		return
	}

	key := fmt.Sprintf("season:%s:member:%s:trend", seasonID, memberID)
	h.serveCached(w, r, key, cache.TTLAnalytics, func() (interface{}, error) {
		return analytics.GetMemberTrend(r.Context(), h.pool, seasonID, memberID)
	})
}

// GetMemberSeasonSummary returns one member's season totals.
// @Summary Get member season summary
// @Description Returns season-wide totals, average daily rates, and rank extremes for one member.
// @Tags analytics
// @Produce json
// @Param seasonID path string true "Season UUID"
// @Param memberID path string true "Member in-game identifier"
// @Success 200 {object} analytics.MemberSeasonSummary
// @Failure 404 {object} respond.ErrorResponse
// @Router /seasons/{seasonID}/members/{memberID}/summary [get]
func (h *Handler) GetMemberSeasonSummary(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := urlUUID(w, r, "seasonID")
	if !ok {
		return
	}
	memberID := chi.URLParam(r, "memberID")
	if memberID == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "memberID is required")
		return
	}

	key := fmt.Sprintf("season:%s:member:%s:summary", seasonID, memberID)
	h.serveCached(w, r, key, cache.TTLAnalytics, func() (interface{}, error) {
		return analytics.GetMemberSeasonSummary(r.Context(), h.pool, seasonID, memberID)
	})
}

// GetGroupComparison returns per-group averages for a season.
// @Summary Get group comparison
// @Description Ranks the alliance's groups by average daily contribution, either in the latest period or across the whole season.
// @Tags analytics
// @Produce json
// @Param seasonID path string true "Season UUID"
// @Param view query string false "latest or season (default latest)"
// @Success 200 {object} analytics.GroupComparison
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /seasons/{seasonID}/groups [get]
func (h *Handler) GetGroupComparison(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := urlUUID(w, r, "seasonID")
	if !ok {
		return
	}
	view := r.URL.Query().Get("view")
	if view == "" {
		view = analytics.ViewLatest
	}
	if view != analytics.ViewLatest && view != analytics.ViewSeason {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_VIEW", "view must be latest or season")
		return
	}

	key := fmt.Sprintf("season:%s:groups:%s", seasonID, view)
	h.serveCached(w, r, key, cache.TTLAnalytics, func() (interface{}, error) {
		return analytics.GetGroupComparison(r.Context(), h.pool, seasonID, view == analytics.ViewLatest)
	})
}
