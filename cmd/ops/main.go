// Command ops is the Warband operations CLI.
//
// Usage:
//
//	warband-ops migrate
//	warband-ops rebuild season --id 6f1c0c2e-...
//	warband-ops rebuild alliance --id 9a2e4b11-...
//	warband-ops events process --id 3b7df028-... --before 5541... --after 90ab...
//	warband-ops verify --season 6f1c0c2e-...
//	warband-ops sweep --repair
//	warband-ops seed --members 40 --uploads 8 --with-events
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/warbandhq/warband/internal/config"
	"github.com/warbandhq/warband/internal/db"
	"github.com/warbandhq/warband/internal/event"
	"github.com/warbandhq/warband/internal/maintenance"
	"github.com/warbandhq/warband/internal/season"
	"github.com/warbandhq/warband/internal/seed"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "warband-ops",
		Short: "Warband operations CLI",
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(rebuildCmd())
	root.AddCommand(eventsCmd())
	root.AddCommand(verifyCmd())
	root.AddCommand(sweepCmd())
	root.AddCommand(seedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// migrate command
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOps(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				if err := db.Migrate(ctx, pool); err != nil {
					return err
				}
				logger.Info("Schema migrated", "duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// rebuild command
// --------------------------------------------------------------------------

func rebuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild periods and metrics from stored snapshots",
	}
	cmd.AddCommand(rebuildSeasonCmd())
	cmd.AddCommand(rebuildAllianceCmd())
	return cmd
}

func rebuildSeasonCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Rebuild a single season",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return fmt.Errorf("--id is required")
			}
			seasonID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("parse season id: %w", err)
			}
			return runOps(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				result, err := season.Rebuild(ctx, pool.Pool, logger, seasonID)
				if err != nil {
					return err
				}
				logger.Info("Season rebuild finished", "summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("rebuild error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Season UUID")
	return cmd
}

func rebuildAllianceCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "alliance",
		Short: "Rebuild every season of an alliance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return fmt.Errorf("--id is required")
			}
			allianceID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("parse alliance id: %w", err)
			}
			return runOps(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				result, err := season.RebuildAlliance(ctx, pool.Pool, logger, allianceID)
				if err != nil {
					return err
				}
				logger.Info("Alliance rebuild finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("rebuild error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Alliance UUID")
	return cmd
}

// --------------------------------------------------------------------------
// events command
// --------------------------------------------------------------------------

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Process event snapshot pairs",
	}
	cmd.AddCommand(eventsProcessCmd())
	return cmd
}

func eventsProcessCmd() *cobra.Command {
	var id, before, after string
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Diff an event's before/after uploads and store per-member metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return fmt.Errorf("--id is required")
			}
			eventID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("parse event id: %w", err)
			}
			beforeID, err := optionalUUID(before)
			if err != nil {
				return fmt.Errorf("parse before upload id: %w", err)
			}
			afterID, err := optionalUUID(after)
			if err != nil {
				return fmt.Errorf("parse after upload id: %w", err)
			}
			return runOps(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				result, err := event.Process(ctx, pool.Pool, logger, eventID, beforeID, afterID)
				if err != nil {
					return err
				}
				logger.Info("Event processed",
					"event_id", result.EventID,
					"category", result.Category,
					"members", result.Members,
					"participants", result.Participants,
					"violators", result.Violators,
					"duration", result.Duration.Round(time.Millisecond))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Event UUID")
	cmd.Flags().StringVar(&before, "before", "", "Override before upload UUID")
	cmd.Flags().StringVar(&after, "after", "", "Override after upload UUID")
	return cmd
}

// --------------------------------------------------------------------------
// verify command
// --------------------------------------------------------------------------

func verifyCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a season's computed periods against its uploads",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return fmt.Errorf("--season is required")
			}
			seasonID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("parse season id: %w", err)
			}
			return runOps(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if err := season.VerifyConsistency(ctx, pool.Pool, seasonID); err != nil {
					return err
				}
				logger.Info("Season consistent", "season_id", seasonID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "season", "", "Season UUID")
	return cmd
}

// --------------------------------------------------------------------------
// sweep command
// --------------------------------------------------------------------------

func sweepCmd() *cobra.Command {
	var repair bool
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the maintenance tasks once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOps(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				mcfg := maintenance.DefaultConfig()
				mcfg.StaleEventAfter = cfg.StaleEventAfter
				mcfg.JobRetention = cfg.JobRetention

				if _, err := maintenance.SweepStaleEvents(ctx, pool.Pool, logger, mcfg.StaleEventAfter); err != nil {
					return err
				}
				if err := maintenance.PruneJobs(ctx, pool.Pool, logger, mcfg.JobRetention, mcfg.JobAbandonAfter); err != nil {
					return err
				}
				broken, err := maintenance.CheckConsistency(ctx, pool.Pool, nil, logger)
				if err != nil {
					return err
				}
				if repair {
					for _, sid := range broken {
						result, err := season.Rebuild(ctx, pool.Pool, logger, sid)
						if err != nil {
							logger.Error("Repair rebuild failed", "season_id", sid, "error", err)
							continue
						}
						logger.Info("Repair rebuild finished", "summary", result.Summary())
					}
				}
				return maintenance.RefreshStatistics(ctx, pool.Pool, logger)
			})
		},
	}
	cmd.Flags().BoolVar(&repair, "repair", false, "Rebuild seasons the consistency check flags")
	return cmd
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	var (
		alliance   string
		seasonName string
		members    int
		uploads    int
		withEvents bool
		rngSeed    uint64
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic alliance with a season of uploads",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOps(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if err := db.Migrate(ctx, pool); err != nil {
					return err
				}
				start := time.Now()
				result := seed.Demo(ctx, pool.Pool, seed.DemoOptions{
					AllianceName: alliance,
					SeasonName:   seasonName,
					Members:      members,
					Uploads:      uploads,
					WithEvents:   withEvents,
					Seed:         rngSeed,
				}, logger)
				logger.Info("Seed finished",
					"duration", time.Since(start).Round(time.Second),
					"alliance_id", result.AllianceID,
					"season_id", result.SeasonID,
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("seed error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&alliance, "alliance", "", "Alliance name (default generated)")
	cmd.Flags().StringVar(&seasonName, "season-name", "", "Season name (default generated)")
	cmd.Flags().IntVar(&members, "members", 40, "Roster size")
	cmd.Flags().IntVar(&uploads, "uploads", 8, "Snapshot upload count")
	cmd.Flags().BoolVar(&withEvents, "with-events", false, "Create and process one event per category")
	cmd.Flags().Uint64Var(&rngSeed, "rng-seed", 1, "Deterministic generator seed")
	return cmd
}

func optionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runOps handles config loading, DB connection, and context cancellation.
func runOps(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
