// Package storage implements the durable record store on SQLite. The
// document-store queries of the upstream design become hand-written SQL:
// month filters hit a materialized sale_month column, search is a LIKE
// predicate over title, description and the canonical price text.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"salestats/internal/core"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReplaceAll implements store.TransactionReplacer. The wipe and the bulk
// insert share one transaction so a failed reseed leaves the previous
// dataset intact.
func (r *Repository) ReplaceAll(ctx context.Context, txs []core.Transaction) (int64, error) {
	for _, t := range txs {
		if err := t.Validate(); err != nil {
			return 0, fmt.Errorf("validate transaction %q: %w", t.Title, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin reseed tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return 0, fmt.Errorf("wipe transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (title, description, price_cents, category, date_of_sale, sale_month, is_sold)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txs {
		var category any
		if t.Category != nil {
			category = *t.Category
		}
		_, err := stmt.ExecContext(ctx,
			t.Title,
			t.Description,
			t.Price.Cents,
			category,
			t.DateOfSale.Format("2006-01-02"),
			int(t.DateOfSale.MonthToken()),
			t.IsSold,
		)
		if err != nil {
			return 0, fmt.Errorf("insert transaction %q: %w", t.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit reseed tx: %w", err)
	}

	slog.InfoContext(ctx, "Dataset reseeded in SQLite", "count", len(txs))
	return int64(len(txs)), nil
}

// listPredicate builds the shared WHERE clause for count and list: month
// equality AND (title OR description OR price-text substring match). An
// empty search degenerates to match-all.
func listPredicate(q core.ListQuery) (string, []any) {
	pattern := "%" + escapeLike(strings.TrimSpace(q.Search)) + "%"
	clause := `sale_month = ?
		AND (title LIKE ? ESCAPE '\'
			OR description LIKE ? ESCAPE '\'
			OR printf('%.2f', price_cents / 100.0) LIKE ? ESCAPE '\')`
	return clause, []any{int(q.Month), pattern, pattern, pattern}
}

// escapeLike makes user input a literal substring pattern. SQLite's LIKE
// is ASCII-case-insensitive, which is the case-folding contract here.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// CountTransactions implements store.TransactionLister.
func (r *Repository) CountTransactions(ctx context.Context, q core.ListQuery) (int64, error) {
	q = q.Normalize()
	clause, args := listPredicate(q)
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE `+clause, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return total, nil
}

// ListTransactions implements store.TransactionLister. Insertion order (id)
// keeps pagination deterministic.
func (r *Repository) ListTransactions(ctx context.Context, q core.ListQuery) ([]core.Transaction, error) {
	q = q.Normalize()
	clause, args := listPredicate(q)
	args = append(args, q.PerPage, q.Offset())

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, price_cents, category, date_of_sale, is_sold
		FROM transactions
		WHERE `+clause+`
		ORDER BY id
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var (
		t        core.Transaction
		category sql.NullString
		date     string
	)
	if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Price.Cents, &category, &date, &t.IsSold); err != nil {
		return core.Transaction{}, err
	}
	if category.Valid {
		t.Category = &category.String
	}
	parsed, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date_of_sale %q: %w", date, err)
	}
	t.DateOfSale = parsed
	return t, nil
}

// MonthStatistics implements store.StatsReader. COALESCE normalizes the
// empty-month sum to zero instead of NULL.
func (r *Repository) MonthStatistics(ctx context.Context, month core.MonthToken) (core.Statistics, error) {
	var stats core.Statistics
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(price_cents), 0),
			COALESCE(SUM(CASE WHEN is_sold = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN is_sold = 0 THEN 1 ELSE 0 END), 0)
		FROM transactions
		WHERE sale_month = ?`, int(month)).
		Scan(&stats.TotalSaleAmount.Cents, &stats.TotalSoldItems, &stats.TotalNotSoldItems)
	if err != nil {
		return core.Statistics{}, fmt.Errorf("month statistics: %w", err)
	}
	return stats, nil
}

// PriceBuckets implements store.StatsReader: one inclusive-range count per
// fixed bucket, always all ten, in bucket order.
func (r *Repository) PriceBuckets(ctx context.Context, month core.MonthToken) ([]core.BucketCount, error) {
	out := make([]core.BucketCount, 0, len(core.PriceBuckets))
	for _, b := range core.PriceBuckets {
		var (
			count int64
			err   error
		)
		if b.MaxCents < 0 {
			err = r.db.QueryRowContext(ctx, `
				SELECT COUNT(*) FROM transactions
				WHERE sale_month = ? AND price_cents >= ?`,
				int(month), b.MinCents).Scan(&count)
		} else {
			err = r.db.QueryRowContext(ctx, `
				SELECT COUNT(*) FROM transactions
				WHERE sale_month = ? AND price_cents BETWEEN ? AND ?`,
				int(month), b.MinCents, b.MaxCents).Scan(&count)
		}
		if err != nil {
			return nil, fmt.Errorf("bucket %s count: %w", b.Label, err)
		}
		out = append(out, core.BucketCount{Range: b.Label, Count: count})
	}
	return out, nil
}

// CategoryCounts implements store.StatsReader. The NULL category forms its
// own group; group order is whatever SQLite yields.
func (r *Repository) CategoryCounts(ctx context.Context, month core.MonthToken) ([]core.CategoryCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM transactions
		WHERE sale_month = ?
		GROUP BY category`, int(month))
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}
	defer rows.Close()

	out := []core.CategoryCount{}
	for rows.Next() {
		var (
			category sql.NullString
			cc       core.CategoryCount
		)
		if err := rows.Scan(&category, &cc.Count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		if category.Valid {
			cc.Category = &category.String
		}
		out = append(out, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category counts: %w", err)
	}
	return out, nil
}
