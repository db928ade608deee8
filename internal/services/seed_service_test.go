package services

import (
	"context"
	"errors"
	"testing"

	"salestats/internal/core"
)

type stubFetcher struct {
	txs []core.Transaction
	err error
}

func (s stubFetcher) Fetch(ctx context.Context) ([]core.Transaction, error) {
	return s.txs, s.err
}

type stubReplacer struct {
	count int64
	err   error
	got   []core.Transaction
}

func (s *stubReplacer) ReplaceAll(ctx context.Context, txs []core.Transaction) (int64, error) {
	s.got = txs
	return s.count, s.err
}

type stubPublisher struct {
	err   error
	calls int
	count int64
}

func (s *stubPublisher) PublishDatasetReseeded(ctx context.Context, count int64) error {
	s.calls++
	s.count = count
	return s.err
}

func sampleTxs() []core.Transaction {
	return []core.Transaction{
		{Title: "Laptop", Price: core.Money{Cents: 329_85}, DateOfSale: core.NewDate(2021, 11, 27), IsSold: true},
		{Title: "Jacket", Price: core.Money{Cents: 150_00}, DateOfSale: core.NewDate(2021, 11, 15)},
	}
}

func TestReseedHappyPath(t *testing.T) {
	replacer := &stubReplacer{count: 2}
	publisher := &stubPublisher{}
	svc := NewSeedService(stubFetcher{txs: sampleTxs()}, replacer, publisher)

	count, err := svc.Reseed(context.Background())
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count %d", count)
	}
	if len(replacer.got) != 2 {
		t.Fatalf("replacer received %d records", len(replacer.got))
	}
	if publisher.calls != 1 || publisher.count != 2 {
		t.Fatalf("publisher calls=%d count=%d", publisher.calls, publisher.count)
	}
}

func TestReseedFetchFailure(t *testing.T) {
	replacer := &stubReplacer{}
	publisher := &stubPublisher{}
	svc := NewSeedService(stubFetcher{err: core.ErrSeedFetch}, replacer, publisher)

	if _, err := svc.Reseed(context.Background()); !errors.Is(err, core.ErrSeedFetch) {
		t.Fatalf("expected ErrSeedFetch, got %v", err)
	}
	if replacer.got != nil {
		t.Fatalf("store touched after failed fetch")
	}
	if publisher.calls != 0 {
		t.Fatalf("published after failed fetch")
	}
}

func TestReseedReplaceFailure(t *testing.T) {
	boom := errors.New("disk full")
	publisher := &stubPublisher{}
	svc := NewSeedService(stubFetcher{txs: sampleTxs()}, &stubReplacer{err: boom}, publisher)

	if _, err := svc.Reseed(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected replace error, got %v", err)
	}
	if publisher.calls != 0 {
		t.Fatalf("published after failed replace")
	}
}

func TestReseedPublishIsBestEffort(t *testing.T) {
	publisher := &stubPublisher{err: errors.New("broker gone")}
	svc := NewSeedService(stubFetcher{txs: sampleTxs()}, &stubReplacer{count: 2}, publisher)

	count, err := svc.Reseed(context.Background())
	if err != nil {
		t.Fatalf("publish failure must not surface: %v", err)
	}
	if count != 2 {
		t.Fatalf("count %d", count)
	}
}

func TestReseedWithoutPublisher(t *testing.T) {
	svc := NewSeedService(stubFetcher{txs: sampleTxs()}, &stubReplacer{count: 2}, nil)
	if _, err := svc.Reseed(context.Background()); err != nil {
		t.Fatalf("nil publisher: %v", err)
	}
}
