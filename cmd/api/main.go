// Command api is the Warband API server.
//
// Usage:
//
//	warband-api
//	API_PORT=8080 warband-api

// @title Warband API
// @version 1.0.0
// @description Alliance member performance tracker: snapshot uploads, period diffing, event analytics, and season rebuild jobs.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Warband
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/warbandhq/warband/internal/api"
	"github.com/warbandhq/warband/internal/cache"
	"github.com/warbandhq/warband/internal/config"
	"github.com/warbandhq/warband/internal/db"
	"github.com/warbandhq/warband/internal/jobs"
	"github.com/warbandhq/warband/internal/maintenance"

	_ "github.com/warbandhq/warband/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Ensure schema
	if err := db.Migrate(ctx, pool); err != nil {
		logger.Error("Failed to migrate schema", "error", err)
		os.Exit(1)
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Start rebuild job worker
	queue := jobs.NewQueue(pool.Pool, logger, cfg.RebuildQueueSize)
	go queue.Start(ctx)
	logger.Info("Rebuild worker started", "queue_size", cfg.RebuildQueueSize)

	// Start maintenance tickers (stale event sweep, job GC, consistency check)
	mcfg := maintenance.DefaultConfig()
	mcfg.SweepInterval = cfg.SweepInterval
	mcfg.StaleEventAfter = cfg.StaleEventAfter
	mcfg.JobRetention = cfg.JobRetention
	go maintenance.Start(ctx, pool.Pool, queue, mcfg, logger)

	// Create router
	router := api.NewRouter(pool.Pool, queue, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Warband API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
