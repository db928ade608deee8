package memory

import (
	"context"
	"testing"

	"salestats/internal/core"
)

func strptr(s string) *string { return &s }

func seedStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	txs := []core.Transaction{
		{Title: "Laptop", Description: "thin and light", Price: core.Money{Cents: 329_85}, Category: strptr("electronics"), DateOfSale: core.NewDate(2021, 11, 27), IsSold: true},
		{Title: "Mouse", Description: "wireless", Price: core.Money{Cents: 25_00}, Category: strptr("electronics"), DateOfSale: core.NewDate(2022, 11, 3), IsSold: false},
		{Title: "Jacket", Description: "winter coat", Price: core.Money{Cents: 150_00}, Category: strptr("clothing"), DateOfSale: core.NewDate(2021, 11, 15), IsSold: true},
		{Title: "Mystery box", Description: "", Price: core.Money{Cents: 901_00}, Category: nil, DateOfSale: core.NewDate(2021, 11, 1), IsSold: false},
		{Title: "Desk", Description: "oak", Price: core.Money{Cents: 450_00}, Category: strptr("furniture"), DateOfSale: core.NewDate(2021, 6, 10), IsSold: true},
	}
	if _, err := s.ReplaceAll(context.Background(), txs); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestReplaceAllAssignsIDsAndWipes(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	count, err := s.ReplaceAll(ctx, []core.Transaction{
		{Title: "Only", Price: core.Money{Cents: 100}, DateOfSale: core.NewDate(2021, 1, 1)},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}
	got, err := s.ListTransactions(ctx, core.ListQuery{Month: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected single record with ID 1, got %+v", got)
	}
}

func TestReplaceAllRejectsInvalidRecord(t *testing.T) {
	s := New()
	_, err := s.ReplaceAll(context.Background(), []core.Transaction{
		{Title: "ok", Price: core.Money{Cents: 100}, DateOfSale: core.NewDate(2021, 1, 1)},
		{Title: "", Price: core.Money{Cents: 100}, DateOfSale: core.NewDate(2021, 1, 1)},
	})
	if err != core.ErrEmptyTitle {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	// Nothing should have been loaded.
	n, _ := s.CountTransactions(context.Background(), core.ListQuery{Month: 1})
	if n != 0 {
		t.Fatalf("partial load after failed replace: %d records", n)
	}
}

func TestMonthFilterIgnoresYear(t *testing.T) {
	s := seedStore(t)
	n, err := s.CountTransactions(context.Background(), core.ListQuery{Month: 11})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	// November 2021 and November 2022 both match.
	if n != 4 {
		t.Fatalf("expected 4 November records, got %d", n)
	}
}

func TestZeroMonthMatchesNothing(t *testing.T) {
	s := seedStore(t)
	n, err := s.CountTransactions(context.Background(), core.ListQuery{Month: 0})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("zero month should match no records, got %d", n)
	}
}

func TestSearchMatchesTitleDescriptionAndPriceText(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()
	cases := []struct {
		search string
		want   int64
	}{
		{"laptop", 1},   // title, case-insensitive
		{"WIRELESS", 1}, // description
		{"329.85", 1},   // canonical price text
		{"329", 1},      // substring of price text
		{"zzz", 0},
		{"", 4}, // empty search matches the whole month
	}
	for _, tc := range cases {
		n, err := s.CountTransactions(ctx, core.ListQuery{Month: 11, Search: tc.search})
		if err != nil {
			t.Fatalf("count %q: %v", tc.search, err)
		}
		if n != tc.want {
			t.Fatalf("search %q expected %d, got %d", tc.search, tc.want, n)
		}
	}
}

func TestListPagination(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	page1, err := s.ListTransactions(ctx, core.ListQuery{Month: 11, Page: 1, PerPage: 3})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(page1) != 3 {
		t.Fatalf("page 1 expected 3 records, got %d", len(page1))
	}

	page2, err := s.ListTransactions(ctx, core.ListQuery{Month: 11, Page: 2, PerPage: 3})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page2) != 1 {
		t.Fatalf("page 2 expected 1 record, got %d", len(page2))
	}

	beyond, err := s.ListTransactions(ctx, core.ListQuery{Month: 11, Page: 9, PerPage: 3})
	if err != nil {
		t.Fatalf("page 9: %v", err)
	}
	if len(beyond) != 0 {
		t.Fatalf("page past the end should be empty, got %d records", len(beyond))
	}
}

func TestMonthStatistics(t *testing.T) {
	s := seedStore(t)
	stats, err := s.MonthStatistics(context.Background(), 11)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	// 329.85 + 25.00 + 150.00 + 901.00, sold and unsold alike.
	if stats.TotalSaleAmount.Cents != 1405_85 {
		t.Fatalf("total amount %d", stats.TotalSaleAmount.Cents)
	}
	if stats.TotalSoldItems != 2 || stats.TotalNotSoldItems != 2 {
		t.Fatalf("sold=%d notSold=%d", stats.TotalSoldItems, stats.TotalNotSoldItems)
	}

	empty, err := s.MonthStatistics(context.Background(), 2)
	if err != nil {
		t.Fatalf("empty stats: %v", err)
	}
	if empty != (core.Statistics{}) {
		t.Fatalf("empty month should report zeros, got %+v", empty)
	}
}

func TestPriceBucketsAlwaysTen(t *testing.T) {
	s := seedStore(t)
	buckets, err := s.PriceBuckets(context.Background(), 11)
	if err != nil {
		t.Fatalf("buckets: %v", err)
	}
	if len(buckets) != 10 {
		t.Fatalf("expected 10 buckets, got %d", len(buckets))
	}
	byRange := map[string]int64{}
	for _, b := range buckets {
		byRange[b.Range] = b.Count
	}
	if byRange["301-400"] != 1 { // 329.85
		t.Fatalf("301-400 count %d", byRange["301-400"])
	}
	if byRange["0-100"] != 1 { // 25.00
		t.Fatalf("0-100 count %d", byRange["0-100"])
	}
	if byRange["101-200"] != 1 { // 150.00
		t.Fatalf("101-200 count %d", byRange["101-200"])
	}
	if byRange["901-above"] != 1 { // 901.00 exactly on the open bound
		t.Fatalf("901-above count %d", byRange["901-above"])
	}

	empty, err := s.PriceBuckets(context.Background(), 2)
	if err != nil {
		t.Fatalf("empty buckets: %v", err)
	}
	if len(empty) != 10 {
		t.Fatalf("empty month still returns 10 buckets, got %d", len(empty))
	}
	for _, b := range empty {
		if b.Count != 0 {
			t.Fatalf("empty month bucket %s count %d", b.Range, b.Count)
		}
	}
}

func TestCategoryCountsGroupsNil(t *testing.T) {
	s := seedStore(t)
	counts, err := s.CategoryCounts(context.Background(), 11)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(counts))
	}
	var sawNil bool
	for _, c := range counts {
		if c.Category == nil {
			sawNil = true
			if c.Count != 1 {
				t.Fatalf("nil category count %d", c.Count)
			}
		} else if *c.Category == "electronics" && c.Count != 2 {
			t.Fatalf("electronics count %d", c.Count)
		}
	}
	if !sawNil {
		t.Fatalf("missing-category group absent")
	}
}
