// Package backend selects and constructs the record store implementation.
package backend

import (
	"fmt"
	"log/slog"

	"salestats/internal/storage"
	"salestats/internal/store"
	"salestats/internal/store/memory"
)

// Backend is the full store surface a running service needs.
type Backend interface {
	store.TransactionReplacer
	store.TransactionLister
	store.StatsReader
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Type names a backend implementation.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string { return string(t) }

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Result carries the backend instance and its optional cleanup.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// New constructs the backend named by backendType.
func New(logger *slog.Logger, backendType Type, sqliteDBPath string) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !backendType.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", backendType)
	}

	switch backendType {
	case SQLiteBackend:
		repo, err := storage.NewRepository(sqliteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", sqliteDBPath)
		return &Result{Backend: repo, Cleanup: repo.Close}, nil
	default:
		logger.Info("Initialized memory backend")
		return &Result{Backend: memory.New(), Cleanup: nil}, nil
	}
}
