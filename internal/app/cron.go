package app

import (
	"context"
	"time"

	marketmod "github.com/rahmasleam/NexusMenaV2/internal/modules/market"
	pkgcron "github.com/rahmasleam/NexusMenaV2/internal/pkg/cron"
	"github.com/rahmasleam/NexusMenaV2/internal/store"
	"go.uber.org/zap"
)

const marketRefreshInterval = 30 * time.Second

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, marketSvc *marketmod.Service, contentStore *store.ContentStore, logger *zap.Logger) {
	cronLogger := logger.Named("cron")

	sched.Register(pkgcron.Job{
		Name:        "market_refresh",
		Description: "Simulate a market tick and broadcast the refreshed board",
		Interval:    marketRefreshInterval,
		RunOnStart:  true,
		Fn: func(ctx context.Context) error {
			if err := marketSvc.Refresh(ctx); err != nil {
				cronLogger.Warn("market refresh failed", zap.Error(err))
				return err
			}
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "content_stats",
		Description: "Log per-collection item counts",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			counts := contentStore.Count()
			fields := make([]zap.Field, 0, len(counts))
			for collection, n := range counts {
				fields = append(fields, zap.Int(string(collection), n))
			}
			cronLogger.Info("content collections", fields...)
			return nil
		},
	})
}
