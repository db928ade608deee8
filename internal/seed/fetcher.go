// Package seed fetches the upstream seed dataset the store is initialized
// from.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"salestats/internal/core"
)

// DefaultURL is the upstream dataset the service was built around.
const DefaultURL = "https://s3.amazonaws.com/roxiler.com/product_transaction.json"

type Fetcher struct {
	url    string
	client *http.Client
}

func NewFetcher(url string, timeout time.Duration) *Fetcher {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// record mirrors one upstream JSON object. The dataset is loose: category
// and description may be null, dateOfSale may be a bare date or a full
// RFC3339 timestamp, prices are floats.
type record struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Price       core.Money `json:"price"`
	Category    *string    `json:"category"`
	DateOfSale  core.Date  `json:"dateOfSale"`
	Sold        bool       `json:"sold"`
}

// Fetch downloads and decodes the upstream dataset.
func (f *Fetcher) Fetch(ctx context.Context) ([]core.Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build seed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSeedFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: upstream returned status %d", core.ErrSeedFetch, resp.StatusCode)
	}

	var records []record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode seed dataset: %w", err)
	}

	txs := make([]core.Transaction, 0, len(records))
	for _, rec := range records {
		t := core.Transaction{
			Title:      rec.Title,
			Price:      rec.Price,
			Category:   rec.Category,
			DateOfSale: rec.DateOfSale,
			IsSold:     rec.Sold,
		}
		if rec.Description != nil {
			t.Description = *rec.Description
		}
		txs = append(txs, t)
	}

	slog.InfoContext(ctx, "Fetched seed dataset", "url", f.url, "count", len(txs))
	return txs, nil
}
