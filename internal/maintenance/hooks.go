package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// churnTables are bulk-rewritten by season rebuilds and event processing, so
// their planner statistics go stale faster than autovacuum notices.
var churnTables = []string{
	"periods",
	"period_metrics",
	"event_metrics",
}

// RefreshStatistics runs ANALYZE on the churn-heavy tables. Rebuilds delete
// and reinsert whole seasons at once, which leaves row estimates badly off
// until the next autovacuum cycle.
func RefreshStatistics(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	for _, tbl := range churnTables {
		start := time.Now()
		_, err := pool.Exec(ctx, "ANALYZE "+tbl)
		dur := time.Since(start).Round(time.Millisecond)

		if err != nil {
			logger.Warn("Failed to refresh table statistics",
				"table", tbl, "duration", dur, "error", err)
			return fmt.Errorf("analyze %s: %w", tbl, err)
		}
		logger.Info("Refreshed table statistics", "table", tbl, "duration", dur)
	}
	return nil
}
