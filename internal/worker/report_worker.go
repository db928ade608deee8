// Package worker contains the reseed report worker: the audit trail for
// the administrative wipe-and-reload operation.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"salestats/internal/amqp"
	"salestats/internal/core"
	"salestats/internal/store"
)

// ReportWorker consumes dataset-reseeded events and logs a per-month
// digest of the freshly loaded dataset.
type ReportWorker struct {
	stats store.StatsReader
}

func NewReportWorker(stats store.StatsReader) *ReportWorker {
	return &ReportWorker{stats: stats}
}

// HandleReseedMessage reads the statistics for all twelve months and logs
// them. The reads are independent, so they run concurrently with a small
// limit to keep the SQLite connection pool civil.
func (w *ReportWorker) HandleReseedMessage(ctx context.Context, msg *amqp.DatasetReseededMessage) error {
	slog.InfoContext(ctx, "Processing reseed message",
		"count", msg.Count,
		"reseeded_at", msg.Timestamp)

	var mu sync.Mutex
	digests := make(map[core.MonthToken]core.Statistics, 12)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for m := core.MonthToken(1); m <= 12; m++ {
		g.Go(func() error {
			stats, err := w.stats.MonthStatistics(gctx, m)
			if err != nil {
				return fmt.Errorf("statistics for %s: %w", m, err)
			}
			mu.Lock()
			digests[m] = stats
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("build reseed report: %w", err)
	}

	for m := core.MonthToken(1); m <= 12; m++ {
		stats := digests[m]
		if stats.TotalSoldItems == 0 && stats.TotalNotSoldItems == 0 {
			continue
		}
		slog.InfoContext(ctx, "Dataset month digest",
			"month", m.String(),
			"sold", stats.TotalSoldItems,
			"not_sold", stats.TotalNotSoldItems,
			"sale_amount", stats.TotalSaleAmount.Text())
	}

	return nil
}
