package services

import (
	"context"
	"fmt"
	"log/slog"

	"salestats/internal/core"
	"salestats/internal/store"
)

// SeedFetcher downloads the upstream dataset.
type SeedFetcher interface {
	Fetch(ctx context.Context) ([]core.Transaction, error)
}

// ReseedPublisher announces completed reseeds. Optional; nil disables it.
type ReseedPublisher interface {
	PublishDatasetReseeded(ctx context.Context, count int64) error
}

// SeedService orchestrates the only write path: fetch the upstream
// dataset, replace the store contents, notify listeners.
type SeedService struct {
	fetcher   SeedFetcher
	replacer  store.TransactionReplacer
	publisher ReseedPublisher
}

func NewSeedService(fetcher SeedFetcher, replacer store.TransactionReplacer, publisher ReseedPublisher) *SeedService {
	return &SeedService{
		fetcher:   fetcher,
		replacer:  replacer,
		publisher: publisher,
	}
}

// Reseed wipes and reloads the dataset, returning the record count. The
// reseed notification is best-effort: once the store is loaded, a publish
// failure is logged but never surfaces to the caller.
func (s *SeedService) Reseed(ctx context.Context) (int64, error) {
	txs, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch seed dataset: %w", err)
	}

	count, err := s.replacer.ReplaceAll(ctx, txs)
	if err != nil {
		return 0, fmt.Errorf("replace dataset: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishDatasetReseeded(ctx, count); err != nil {
			slog.ErrorContext(ctx, "Failed to publish reseed message",
				"count", count, "error", err)
		}
	}

	return count, nil
}
