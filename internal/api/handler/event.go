package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/warbandhq/warband/internal/api/respond"
	"github.com/warbandhq/warband/internal/cache"
	"github.com/warbandhq/warband/internal/event"
	"github.com/warbandhq/warband/internal/model"
)

type eventPayload struct {
	AllianceID     uuid.UUID  `json:"alliance_id" validate:"required"`
	Name           string     `json:"name" validate:"required,max=200"`
	Category       string     `json:"category" validate:"required"`
	Description    string     `json:"description" validate:"max=2000"`
	BeforeUploadID *uuid.UUID `json:"before_upload_id"`
	AfterUploadID  *uuid.UUID `json:"after_upload_id"`
	EventStart     *time.Time `json:"event_start"`
	EventEnd       *time.Time `json:"event_end"`
}

// CreateEvent creates a draft event.
// @Summary Create event
// @Description Creates an event in draft status. Snapshot uploads can be attached now or at processing time.
// @Tags events
// @Accept json
// @Produce json
// @Param payload body eventPayload true "Event definition"
// @Success 201 {object} model.Event
// @Failure 400 {object} respond.ErrorResponse
// @Router /events [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var payload eventPayload
	if !h.decodeValid(w, r, &payload) {
		return
	}
	category, err := model.ParseCategory(payload.Category)
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}

	created, err := event.Create(r.Context(), h.pool, model.Event{
		AllianceID:     payload.AllianceID,
		Name:           payload.Name,
		Category:       category,
		Description:    payload.Description,
		BeforeUploadID: payload.BeforeUploadID,
		AfterUploadID:  payload.AfterUploadID,
		EventStart:     payload.EventStart,
		EventEnd:       payload.EventEnd,
	})
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}

	h.cache.InvalidatePrefix("alliance:" + payload.AllianceID.String())
	respond.WriteJSONObject(w, http.StatusCreated, created)
}

// GetEvent returns an event with its metric rows.
// @Summary Get event
// @Description Returns the event, its stored metric rows, and a summary once processing has completed.
// @Tags events
// @Produce json
// @Param eventID path string true "Event UUID"
// @Success 200 {object} event.Detail
// @Failure 404 {object} respond.ErrorResponse
// @Router /events/{eventID} [get]
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlUUID(w, r, "eventID")
	if !ok {
		return
	}

	key := fmt.Sprintf("event:%s:detail", eventID)
	h.serveCached(w, r, key, cache.TTLEvents, func() (interface{}, error) {
		return event.GetDetail(r.Context(), h.pool, eventID)
	})
}

type eventUpdatePayload struct {
	Name           string     `json:"name" validate:"required,max=200"`
	Description    string     `json:"description" validate:"max=2000"`
	BeforeUploadID *uuid.UUID `json:"before_upload_id"`
	AfterUploadID  *uuid.UUID `json:"after_upload_id"`
	EventStart     *time.Time `json:"event_start"`
	EventEnd       *time.Time `json:"event_end"`
}

// UpdateEvent updates an event's mutable fields.
// @Summary Update event
// @Description Updates name, description, upload references, and timing. Category and lifecycle status cannot be changed here.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event UUID"
// @Param payload body eventUpdatePayload true "Fields to store"
// @Success 200 {object} model.Event
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /events/{eventID} [put]
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlUUID(w, r, "eventID")
	if !ok {
		return
	}
	var payload eventUpdatePayload
	if !h.decodeValid(w, r, &payload) {
		return
	}

	e, err := event.Get(r.Context(), h.pool, eventID)
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}
	e.Name = payload.Name
	e.Description = payload.Description
	e.BeforeUploadID = payload.BeforeUploadID
	e.AfterUploadID = payload.AfterUploadID
	e.EventStart = payload.EventStart
	e.EventEnd = payload.EventEnd

	if err := event.Update(r.Context(), h.pool, e); err != nil {
		h.writeDomainErr(w, r, err)
		return
	}

	h.cache.InvalidatePrefix("event:" + eventID.String())
	h.cache.InvalidatePrefix("alliance:" + e.AllianceID.String())
	respond.WriteJSONObject(w, http.StatusOK, e)
}

// DeleteEvent deletes an event and its metrics.
// @Summary Delete event
// @Description Deletes the event; stored metric rows go with it.
// @Tags events
// @Produce json
// @Param eventID path string true "Event UUID"
// @Success 204
// @Failure 404 {object} respond.ErrorResponse
// @Router /events/{eventID} [delete]
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlUUID(w, r, "eventID")
	if !ok {
		return
	}

	e, err := event.Get(r.Context(), h.pool, eventID)
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}
	if err := event.Delete(r.Context(), h.pool, eventID); err != nil {
		h.writeDomainErr(w, r, err)
		return
	}

	h.cache.InvalidatePrefix("event:" + eventID.String())
	h.cache.InvalidatePrefix("alliance:" + e.AllianceID.String())
	w.WriteHeader(http.StatusNoContent)
}

type processPayload struct {
	BeforeUploadID *uuid.UUID `json:"before_upload_id"`
	AfterUploadID  *uuid.UUID `json:"after_upload_id"`
}

// ProcessEvent computes an event's metrics from its snapshot pair.
// @Summary Process event snapshots
// @Description Diffs the before and after uploads and stores per-member metrics, replacing any earlier run. Upload IDs in the body override the stored references; an empty body reprocesses with the stored pair.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event UUID"
// @Param payload body processPayload false "Optional upload overrides"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /events/{eventID}/process [post]
func (h *Handler) ProcessEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlUUID(w, r, "eventID")
	if !ok {
		return
	}
	var payload processPayload
	if r.ContentLength != 0 {
		if !h.decodeValid(w, r, &payload) {
			return
		}
	}

	result, err := event.Process(r.Context(), h.pool, h.logger, eventID, payload.BeforeUploadID, payload.AfterUploadID)
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}

	h.cache.InvalidatePrefix("event:" + eventID.String())
	h.cache.InvalidatePrefix("alliance:" + result.AllianceID.String())
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"event_id":     result.EventID,
		"category":     result.Category,
		"members":      result.Members,
		"participants": result.Participants,
		"absent":       result.Absent,
		"violators":    result.Violators,
		"duration":     result.Duration.Round(time.Millisecond).String(),
	})
}

// GetEventSummary returns the aggregate summary of a completed event.
// @Summary Get event summary
// @Description Returns participation and violation aggregates. Events that have not completed processing return 409.
// @Tags events
// @Produce json
// @Param eventID path string true "Event UUID"
// @Success 200 {object} engine.EventSummary
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /events/{eventID}/summary [get]
func (h *Handler) GetEventSummary(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlUUID(w, r, "eventID")
	if !ok {
		return
	}

	key := fmt.Sprintf("event:%s:summary", eventID)
	h.serveCached(w, r, key, cache.TTLEvents, func() (interface{}, error) {
		return event.GetSummary(r.Context(), h.pool, eventID)
	})
}

// GetEventAnalytics returns the group analytics view of a completed event.
// @Summary Get event group analytics
// @Description Returns summary, per-group rollup, top lists, and a score distribution for a completed event.
// @Tags events
// @Produce json
// @Param eventID path string true "Event UUID"
// @Param top query int false "Top list length (default 5)"
// @Success 200 {object} event.GroupAnalytics
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /events/{eventID}/analytics [get]
func (h *Handler) GetEventAnalytics(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlUUID(w, r, "eventID")
	if !ok {
		return
	}
	topN := 0
	if s := r.URL.Query().Get("top"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 100 {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_TOP", "top must be an integer between 1 and 100")
			return
		}
		topN = n
	}

	key := fmt.Sprintf("event:%s:analytics:%d", eventID, topN)
	h.serveCached(w, r, key, cache.TTLEvents, func() (interface{}, error) {
		return event.GetGroupAnalytics(r.Context(), h.pool, eventID, topN)
	})
}

// ListEvents returns an alliance's events with headline counts.
// @Summary List events
// @Description Returns all events of an alliance, newest first, with member, participant, and violator counts.
// @Tags events
// @Produce json
// @Param allianceID path string true "Alliance UUID"
// @Success 200 {array} event.Overview
// @Failure 400 {object} respond.ErrorResponse
// @Router /alliances/{allianceID}/events [get]
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	allianceID, ok := urlUUID(w, r, "allianceID")
	if !ok {
		return
	}

	key := fmt.Sprintf("alliance:%s:events", allianceID)
	h.serveCached(w, r, key, cache.TTLEvents, func() (interface{}, error) {
		return event.ListOverviews(r.Context(), h.pool, allianceID)
	})
}

// RecentEvents returns recent completed events.
// @Summary Recent completed events
// @Description Returns the most recently completed events, for feeds and bots.
// @Tags events
// @Produce json
// @Param allianceID path string true "Alliance UUID"
// @Param limit query int false "Maximum events (default 10)"
// @Success 200 {array} model.Event
// @Failure 400 {object} respond.ErrorResponse
// @Router /alliances/{allianceID}/events/recent [get]
func (h *Handler) RecentEvents(w http.ResponseWriter, r *http.Request) {
	allianceID, ok := urlUUID(w, r, "allianceID")
	if !ok {
		return
	}
	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 100 {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer between 1 and 100")
			return
		}
		limit = n
	}

	key := fmt.Sprintf("alliance:%s:events:recent:%d", allianceID, limit)
	h.serveCached(w, r, key, cache.TTLEvents, func() (interface{}, error) {
		events, err := event.RecentCompleted(r.Context(), h.pool, allianceID, limit)
		if err != nil {
			return nil, err
		}
		if events == nil {
			events = []model.Event{}
		}
		return events, nil
	})
}
