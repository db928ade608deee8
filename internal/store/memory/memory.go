// Package memory is an in-process record store with the same observable
// predicate semantics as the SQLite backend. It backs the "memory" data
// backend and keeps handler tests free of filesystem fixtures.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"salestats/internal/core"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Transaction
}

func New() *Store {
	return &Store{nextID: 1}
}

// ReplaceAll wipes the store and loads the given records, assigning IDs in
// input order.
func (s *Store) ReplaceAll(_ context.Context, txs []core.Transaction) (int64, error) {
	for _, t := range txs {
		if err := t.Validate(); err != nil {
			return 0, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]core.Transaction, 0, len(txs))
	s.nextID = 1
	for _, t := range txs {
		t.ID = s.nextID
		s.nextID++
		s.items = append(s.items, t)
	}
	return int64(len(s.items)), nil
}

func matches(t core.Transaction, q core.ListQuery) bool {
	if t.DateOfSale.MonthToken() != q.Month {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), search) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), search) {
		return true
	}
	return strings.Contains(t.Price.Text(), search)
}

func (s *Store) CountTransactions(_ context.Context, q core.ListQuery) (int64, error) {
	q = q.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, t := range s.items {
		if matches(t, q) {
			n++
		}
	}
	return n, nil
}

func (s *Store) ListTransactions(_ context.Context, q core.ListQuery) ([]core.Transaction, error) {
	q = q.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []core.Transaction
	for _, t := range s.items {
		if matches(t, q) {
			all = append(all, t)
		}
	}
	start := q.Offset()
	if start >= len(all) {
		return []core.Transaction{}, nil
	}
	end := start + q.PerPage
	if end > len(all) {
		end = len(all)
	}
	page := make([]core.Transaction, end-start)
	copy(page, all[start:end])
	return page, nil
}

func (s *Store) MonthStatistics(_ context.Context, month core.MonthToken) (core.Statistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stats core.Statistics
	for _, t := range s.items {
		if t.DateOfSale.MonthToken() != month {
			continue
		}
		stats.TotalSaleAmount.Cents += t.Price.Cents
		if t.IsSold {
			stats.TotalSoldItems++
		} else {
			stats.TotalNotSoldItems++
		}
	}
	return stats, nil
}

func (s *Store) PriceBuckets(_ context.Context, month core.MonthToken) ([]core.BucketCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.BucketCount, len(core.PriceBuckets))
	for i, b := range core.PriceBuckets {
		out[i] = core.BucketCount{Range: b.Label}
		for _, t := range s.items {
			if t.DateOfSale.MonthToken() == month && b.Contains(t.Price) {
				out[i].Count++
			}
		}
	}
	return out, nil
}

func (s *Store) CategoryCounts(_ context.Context, month core.MonthToken) ([]core.CategoryCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int64)
	var nilCount int64
	for _, t := range s.items {
		if t.DateOfSale.MonthToken() != month {
			continue
		}
		if t.Category == nil {
			nilCount++
			continue
		}
		counts[*t.Category]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	// Deterministic order helps the tests; the contract leaves it open.
	sort.Strings(names)
	out := make([]core.CategoryCount, 0, len(names)+1)
	for _, name := range names {
		n := name
		out = append(out, core.CategoryCount{Category: &n, Count: counts[name]})
	}
	if nilCount > 0 {
		out = append(out, core.CategoryCount{Category: nil, Count: nilCount})
	}
	return out, nil
}
