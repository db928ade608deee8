package services

import (
	"context"
	"errors"
	"testing"

	"salestats/internal/core"
)

type stubStats struct {
	stats      core.Statistics
	statsErr   error
	buckets    []core.BucketCount
	bucketsErr error
	cats       []core.CategoryCount
	catsErr    error
}

func (s stubStats) MonthStatistics(context.Context, core.MonthToken) (core.Statistics, error) {
	return s.stats, s.statsErr
}

func (s stubStats) PriceBuckets(context.Context, core.MonthToken) ([]core.BucketCount, error) {
	return s.buckets, s.bucketsErr
}

func (s stubStats) CategoryCounts(context.Context, core.MonthToken) ([]core.CategoryCount, error) {
	return s.cats, s.catsErr
}

func TestCombinedDataMergesAllThree(t *testing.T) {
	cat := "electronics"
	svc := NewAnalyticsService(stubStats{
		stats:   core.Statistics{TotalSaleAmount: core.Money{Cents: 500_00}, TotalSoldItems: 3, TotalNotSoldItems: 1},
		buckets: []core.BucketCount{{Range: "0-100", Count: 2}},
		cats:    []core.CategoryCount{{Category: &cat, Count: 4}},
	})

	combined, err := svc.CombinedData(context.Background(), 11)
	if err != nil {
		t.Fatalf("combined: %v", err)
	}
	if combined.Statistics.TotalSoldItems != 3 {
		t.Fatalf("statistics lost: %+v", combined.Statistics)
	}
	if len(combined.BarChart) != 1 || combined.BarChart[0].Count != 2 {
		t.Fatalf("bar chart lost: %+v", combined.BarChart)
	}
	if len(combined.PieChart) != 1 || combined.PieChart[0].Count != 4 {
		t.Fatalf("pie chart lost: %+v", combined.PieChart)
	}
}

func TestCombinedDataAllOrNothing(t *testing.T) {
	boom := errors.New("boom")
	cases := []stubStats{
		{statsErr: boom},
		{bucketsErr: boom},
		{catsErr: boom},
	}
	for i, stub := range cases {
		svc := NewAnalyticsService(stub)
		combined, err := svc.CombinedData(context.Background(), 11)
		if !errors.Is(err, boom) {
			t.Fatalf("case %d: expected wrapped boom, got %v", i, err)
		}
		// No partial payload leaks out on failure.
		if combined.BarChart != nil || combined.PieChart != nil || combined.Statistics != (core.Statistics{}) {
			t.Fatalf("case %d: partial result %+v", i, combined)
		}
	}
}

func TestPassThroughQueries(t *testing.T) {
	svc := NewAnalyticsService(stubStats{
		stats: core.Statistics{TotalSoldItems: 7},
	})
	stats, err := svc.Statistics(context.Background(), 3)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalSoldItems != 7 {
		t.Fatalf("stats %+v", stats)
	}
}
