// Package handler provides HTTP handlers for all API endpoints. Handlers are
// thin: they parse and validate input, call the domain packages, and map
// sentinel errors onto status codes. Read endpoints that serve computed
// analytics go through the in-memory cache with ETag revalidation.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warbandhq/warband/internal/api/respond"
	"github.com/warbandhq/warband/internal/cache"
	"github.com/warbandhq/warband/internal/config"
	"github.com/warbandhq/warband/internal/jobs"
	"github.com/warbandhq/warband/internal/model"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool     *pgxpool.Pool
	queue    *jobs.Queue
	cache    *cache.Cache
	cfg      *config.Config
	logger   *slog.Logger
	validate *validator.Validate
}

// New creates a Handler with shared dependencies.
func New(pool *pgxpool.Pool, queue *jobs.Queue, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		pool:     pool,
		queue:    queue,
		cache:    c,
		cfg:      cfg,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and docs location.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Warband API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	var n int
	err := h.pool.QueryRow(r.Context(), "health_check").Scan(&n)
	if err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --------------------------------------------------------------------------
// Shared helpers
// --------------------------------------------------------------------------

// urlUUID parses a UUID path parameter. A false return means the error
// response has already been written.
func urlUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", name+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// decodeValid decodes a JSON body into dst and runs struct validation. A
// false return means the error response has already been written.
func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", err.Error())
		return false
	}
	return true
}

// writeDomainErr maps sentinel errors from the domain packages onto HTTP
// status codes. Anything unrecognized becomes a 500 with the detail logged,
// not leaked.
func (h *Handler) writeDomainErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, model.ErrInvalidState):
		respond.WriteError(w, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, model.ErrUnknownCategory), errors.Is(err, model.ErrUnknownStatus):
		respond.WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, model.ErrSeasonInconsistent):
		respond.WriteError(w, http.StatusInternalServerError, "SEASON_INCONSISTENT", err.Error())
	case errors.Is(err, jobs.ErrQueueFull):
		w.Header().Set("Retry-After", "30")
		respond.WriteError(w, http.StatusServiceUnavailable, "QUEUE_FULL", "Rebuild queue is full, retry later")
	default:
		h.logger.Error("Request failed", "path", r.URL.Path, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}

// serveCached runs the cache-aside flow for a GET endpoint: serve a hit
// (honoring If-None-Match), otherwise compute, store, and serve. compute
// returns the value to marshal.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, compute func() (interface{}, error)) {
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	v, err := compute()
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		h.writeDomainErr(w, r, err)
		return
	}

	etag := h.cache.Set(key, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}
