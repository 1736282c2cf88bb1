package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/warbandhq/warband/internal/api/handler"
	"github.com/warbandhq/warband/internal/cache"
	"github.com/warbandhq/warband/internal/config"
	"github.com/warbandhq/warband/internal/jobs"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(pool *pgxpool.Pool, queue *jobs.Queue, appCache *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, queue, appCache, cfg, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Seasons and uploads
		r.Get("/alliances/{allianceID}/seasons", h.ListSeasons)
		r.Post("/seasons/{seasonID}/uploads", h.RegisterUpload)
		r.Delete("/uploads/{uploadID}", h.RemoveUpload)

		// Rebuilds
		r.Post("/seasons/{seasonID}/rebuild", h.EnqueueRebuild)
		r.Post("/seasons/{seasonID}/rebuild/sync", h.RebuildSync)
		r.Get("/jobs/{jobID}", h.GetJob)

		// Periods
		r.Get("/seasons/{seasonID}/periods", h.ListPeriods)
		r.Get("/periods/{periodID}/metrics", h.GetPeriodMetrics)
		r.Get("/periods/{periodID}/averages", h.GetPeriodAverages)

		// Season analytics
		r.Get("/seasons/{seasonID}/trend", h.GetAllianceTrend)
		r.Get("/seasons/{seasonID}/groups", h.GetGroupComparison)
		r.Get("/seasons/{seasonID}/members/{memberID}/trend", h.GetMemberTrend)
		r.Get("/seasons/{seasonID}/members/{memberID}/summary", h.GetMemberSeasonSummary)

		// Events
		r.Post("/events", h.CreateEvent)
		r.Get("/events/{eventID}", h.GetEvent)
		r.Put("/events/{eventID}", h.UpdateEvent)
		r.Delete("/events/{eventID}", h.DeleteEvent)
		r.Post("/events/{eventID}/process", h.ProcessEvent)
		r.Get("/events/{eventID}/summary", h.GetEventSummary)
		r.Get("/events/{eventID}/analytics", h.GetEventAnalytics)
		r.Get("/alliances/{allianceID}/events", h.ListEvents)
		r.Get("/alliances/{allianceID}/events/recent", h.RecentEvents)
	})

	return r
}
