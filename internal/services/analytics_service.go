package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"salestats/internal/core"
	"salestats/internal/store"
)

// AnalyticsService answers the month-scoped aggregate queries. It is a
// thin composition over the store's StatsReader; the combined query runs
// the three aggregates concurrently and merges only after all succeed.
type AnalyticsService struct {
	stats store.StatsReader
}

func NewAnalyticsService(stats store.StatsReader) *AnalyticsService {
	return &AnalyticsService{stats: stats}
}

func (s *AnalyticsService) Statistics(ctx context.Context, month core.MonthToken) (core.Statistics, error) {
	return s.stats.MonthStatistics(ctx, month)
}

func (s *AnalyticsService) BarChart(ctx context.Context, month core.MonthToken) ([]core.BucketCount, error) {
	return s.stats.PriceBuckets(ctx, month)
}

func (s *AnalyticsService) PieChart(ctx context.Context, month core.MonthToken) ([]core.CategoryCount, error) {
	return s.stats.CategoryCounts(ctx, month)
}

// CombinedData fans out the three aggregates and joins before responding.
// Any sub-query failure cancels the rest and fails the whole call; there
// is no partial aggregation.
func (s *AnalyticsService) CombinedData(ctx context.Context, month core.MonthToken) (core.CombinedData, error) {
	var combined core.CombinedData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.stats.MonthStatistics(gctx, month)
		if err != nil {
			return fmt.Errorf("statistics: %w", err)
		}
		combined.Statistics = stats
		return nil
	})
	g.Go(func() error {
		buckets, err := s.stats.PriceBuckets(gctx, month)
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		combined.BarChart = buckets
		return nil
	})
	g.Go(func() error {
		categories, err := s.stats.CategoryCounts(gctx, month)
		if err != nil {
			return fmt.Errorf("pie chart: %w", err)
		}
		combined.PieChart = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		return core.CombinedData{}, fmt.Errorf("combined data for %s: %w", month, err)
	}
	return combined, nil
}
