package store

import (
	"context"

	"salestats/internal/core"
)

// Ports for the record store. Handlers and services depend on these, never
// on a concrete backend; the handle is constructed once and passed down.
type (
	// TransactionReplacer performs the only write: wipe and bulk-load the
	// whole dataset. Returns the number of records inserted.
	TransactionReplacer interface {
		ReplaceAll(ctx context.Context, txs []core.Transaction) (int64, error)
	}

	// TransactionLister executes the listing predicate: an independent
	// total count and a range-limited page slice in insertion order.
	TransactionLister interface {
		CountTransactions(ctx context.Context, q core.ListQuery) (int64, error)
		ListTransactions(ctx context.Context, q core.ListQuery) ([]core.Transaction, error)
	}

	// StatsReader provides the month-scoped aggregates.
	StatsReader interface {
		// MonthStatistics returns sum/count aggregates, zero-normalized
		// when no records match.
		MonthStatistics(ctx context.Context, month core.MonthToken) (core.Statistics, error)
		// PriceBuckets returns exactly one count per fixed bucket, in
		// bucket order, including zero counts.
		PriceBuckets(ctx context.Context, month core.MonthToken) ([]core.BucketCount, error)
		// CategoryCounts groups matching records by category, the nil
		// category forming its own group. Order is store-dependent.
		CategoryCounts(ctx context.Context, month core.MonthToken) ([]core.CategoryCount, error)
	}
)
