package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/warbandhq/warband/internal/api/respond"
	"github.com/warbandhq/warband/internal/cache"
	"github.com/warbandhq/warband/internal/jobs"
	"github.com/warbandhq/warband/internal/model"
	"github.com/warbandhq/warband/internal/season"
)

// ListSeasons returns an alliance's seasons.
// @Summary List seasons
// @Description Returns all seasons of an alliance, newest first.
// @Tags seasons
// @Produce json
// @Param allianceID path string true "Alliance UUID"
// @Success 200 {array} model.Season
// @Failure 400 {object} respond.ErrorResponse
// @Router /alliances/{allianceID}/seasons [get]
func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	allianceID, ok := urlUUID(w, r, "allianceID")
	if !ok {
		return
	}

	seasons, err := season.ListByAlliance(r.Context(), h.pool, allianceID)
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}
	if seasons == nil {
		seasons = []model.Season{}
	}
	respond.WriteJSONObject(w, http.StatusOK, seasons)
}

// --------------------------------------------------------------------------
// Uploads
// --------------------------------------------------------------------------

type uploadPayload struct {
	SnapshotDate time.Time    `json:"snapshot_date" validate:"required"`
	Label        string       `json:"label"`
	Rows         []rowPayload `json:"rows" validate:"required,min=1,dive"`
}

type rowPayload struct {
	MemberID          string `json:"member_id" validate:"required"`
	MemberName        string `json:"member_name" validate:"required"`
	ContributionRank  int    `json:"contribution_rank" validate:"gte=0"`
	TotalContribution int64  `json:"total_contribution" validate:"gte=0"`
	TotalMerit        int64  `json:"total_merit" validate:"gte=0"`
	TotalAssist       int64  `json:"total_assist" validate:"gte=0"`
	TotalDonation     int64  `json:"total_donation" validate:"gte=0"`
	PowerValue        int64  `json:"power_value" validate:"gte=0"`
	State             string `json:"state"`
	GroupName         string `json:"group_name"`
}

type uploadResponse struct {
	Upload *model.Upload `json:"upload"`
	JobID  *uuid.UUID    `json:"job_id,omitempty"`
}

// RegisterUpload registers a snapshot upload and queues a rebuild.
// @Summary Register snapshot upload
// @Description Registers one snapshot upload with its member rows and enqueues a season rebuild. Rows are immutable once stored.
// @Tags seasons
// @Accept json
// @Produce json
// @Param seasonID path string true "Season UUID"
// @Param payload body uploadPayload true "Upload with member rows"
// @Success 201 {object} uploadResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /seasons/{seasonID}/uploads [post]
func (h *Handler) RegisterUpload(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := urlUUID(w, r, "seasonID")
	if !ok {
		return
	}
	var payload uploadPayload
	if !h.decodeValid(w, r, &payload) {
		return
	}

	rows := make([]model.MemberSnapshot, 0, len(payload.Rows))
	for _, p := range payload.Rows {
		rows = append(rows, model.MemberSnapshot{
			MemberID:          p.MemberID,
			MemberName:        p.MemberName,
			ContributionRank:  p.ContributionRank,
			TotalContribution: p.TotalContribution,
			TotalMerit:        p.TotalMerit,
			TotalAssist:       p.TotalAssist,
			TotalDonation:     p.TotalDonation,
			PowerValue:        p.PowerValue,
			State:             p.State,
			GroupName:         p.GroupName,
		})
	}

	up, err := season.RegisterUpload(r.Context(), h.pool, model.Upload{
		SeasonID:     seasonID,
		SnapshotDate: payload.SnapshotDate,
		Label:        payload.Label,
	}, rows)
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}

	h.cache.InvalidatePrefix("season:" + seasonID.String())
	respond.WriteJSONObject(w, http.StatusCreated, uploadResponse{
		Upload: up,
		JobID:  h.enqueueRebuild(r, seasonID),
	})
}

// RemoveUpload deletes an upload and queues a rebuild.
// @Summary Remove snapshot upload
// @Description Deletes one upload with its member rows and enqueues a season rebuild.
// @Tags seasons
// @Produce json
// @Param uploadID path string true "Upload UUID"
// @Success 200 {object} uploadResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /uploads/{uploadID} [delete]
func (h *Handler) RemoveUpload(w http.ResponseWriter, r *http.Request) {
	uploadID, ok := urlUUID(w, r, "uploadID")
	if !ok {
		return
	}

	up, err := season.RemoveUpload(r.Context(), h.pool, uploadID)
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}

	h.cache.InvalidatePrefix("season:" + up.SeasonID.String())
	respond.WriteJSONObject(w, http.StatusOK, uploadResponse{
		Upload: up,
		JobID:  h.enqueueRebuild(r, up.SeasonID),
	})
}

// enqueueRebuild queues a rebuild after an upload change. The upload is
// already persisted at this point, so a full queue is logged rather than
// failing the request; the consistency ticker catches anything dropped here.
func (h *Handler) enqueueRebuild(r *http.Request, seasonID uuid.UUID) *uuid.UUID {
	jobID, err := h.queue.Enqueue(r.Context(), seasonID)
	if err != nil {
		h.logger.Warn("Rebuild not enqueued after upload change", "season_id", seasonID, "error", err)
		return nil
	}
	return &jobID
}

// --------------------------------------------------------------------------
// Rebuilds and jobs
// --------------------------------------------------------------------------

// EnqueueRebuild queues a season rebuild.
// @Summary Enqueue season rebuild
// @Description Queues a full rebuild of the season's periods and metrics. Repeated calls while a job is still queued coalesce onto the same job.
// @Tags rebuilds
// @Produce json
// @Param seasonID path string true "Season UUID"
// @Success 202 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /seasons/{seasonID}/rebuild [post]
func (h *Handler) EnqueueRebuild(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := urlUUID(w, r, "seasonID")
	if !ok {
		return
	}
	if _, err := season.GetSeason(r.Context(), h.pool, seasonID); err != nil {
		h.writeDomainErr(w, r, err)
		return
	}

	jobID, err := h.queue.Enqueue(r.Context(), seasonID)
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusAccepted, map[string]interface{}{
		"job_id":    jobID,
		"season_id": seasonID,
		"status":    model.JobStatusQueued,
	})
}

// RebuildSync rebuilds a season synchronously.
// @Summary Rebuild season synchronously
// @Description Runs a full season rebuild in the request and returns its result. Intended for operations and testing; production writes go through the queue.
// @Tags rebuilds
// @Produce json
// @Param seasonID path string true "Season UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /seasons/{seasonID}/rebuild/sync [post]
func (h *Handler) RebuildSync(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := urlUUID(w, r, "seasonID")
	if !ok {
		return
	}

	result, err := season.Rebuild(r.Context(), h.pool, h.logger, seasonID)
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}

	h.cache.InvalidatePrefix("season:" + seasonID.String())
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"season_id": result.SeasonID,
		"periods":   result.Periods,
		"metrics":   result.Metrics,
		"duration":  result.Duration.Round(time.Millisecond).String(),
		"errors":    result.Errors,
	})
}

// GetJob returns rebuild job status.
// @Summary Get rebuild job
// @Description Returns the status and counts of one rebuild job.
// @Tags rebuilds
// @Produce json
// @Param jobID path string true "Job UUID"
// @Success 200 {object} model.RebuildJob
// @Failure 404 {object} respond.ErrorResponse
// @Router /jobs/{jobID} [get]
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := urlUUID(w, r, "jobID")
	if !ok {
		return
	}

	job, err := jobs.Status(r.Context(), h.pool, jobID)
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, job)
}

// --------------------------------------------------------------------------
// Periods
// --------------------------------------------------------------------------

// ListPeriods returns a season's computed periods.
// @Summary List periods
// @Description Returns the season's periods in period-number order.
// @Tags periods
// @Produce json
// @Param seasonID path string true "Season UUID"
// @Success 200 {array} model.Period
// @Failure 404 {object} respond.ErrorResponse
// @Router /seasons/{seasonID}/periods [get]
func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := urlUUID(w, r, "seasonID")
	if !ok {
		return
	}

	key := fmt.Sprintf("season:%s:periods", seasonID)
	h.serveCached(w, r, key, cache.TTLPeriods, func() (interface{}, error) {
		if _, err := season.GetSeason(r.Context(), h.pool, seasonID); err != nil {
			return nil, err
		}
		periods, err := season.ListPeriods(r.Context(), h.pool, seasonID)
		if err != nil {
			return nil, err
		}
		if periods == nil {
			periods = []model.Period{}
		}
		return periods, nil
	})
}

// GetPeriodMetrics returns a period's member metric rows.
// @Summary Get period metrics
// @Description Returns the period's member metric rows ordered by end rank.
// @Tags periods
// @Produce json
// @Param periodID path string true "Period UUID"
// @Success 200 {array} model.PeriodMetric
// @Failure 404 {object} respond.ErrorResponse
// @Router /periods/{periodID}/metrics [get]
func (h *Handler) GetPeriodMetrics(w http.ResponseWriter, r *http.Request) {
	periodID, ok := urlUUID(w, r, "periodID")
	if !ok {
		return
	}

	key := fmt.Sprintf("period:%s:metrics", periodID)
	h.serveCached(w, r, key, cache.TTLPeriods, func() (interface{}, error) {
		return season.GetPeriodMetrics(r.Context(), h.pool, periodID)
	})
}
