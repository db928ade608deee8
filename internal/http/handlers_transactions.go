package http

import (
	"context"
	"fmt"
	"net/http"

	"salestats/internal/core"
	"salestats/internal/log"
)

// handleTransactions serves the paginated, filtered, searchable listing.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError(http.MethodGet).Write(w)
		return
	}

	q := ParseListQuery(r.URL.Query())

	result, err := s.listTransactions(r.Context(), q)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Listing failed",
			log.FieldOperation, log.OpList, log.FieldError, err,
			log.FieldMonth, q.Month.String(), log.FieldSearch, q.Search, log.FieldPage, q.Page)
		InternalServerError("Failed to fetch transactions").Write(w)
		return
	}

	NewJSONResponse().Body(result).Write(w)
}

// listTransactions runs the count and the page slice for one query. The
// two reads are separate statements; with a read-mostly store the drift
// window between them is accepted.
func (s *Server) listTransactions(ctx context.Context, q core.ListQuery) (core.ListResult, error) {
	total, err := s.lister.CountTransactions(ctx, q)
	if err != nil {
		return core.ListResult{}, fmt.Errorf("count transactions: %w", err)
	}

	txs, err := s.lister.ListTransactions(ctx, q)
	if err != nil {
		return core.ListResult{}, fmt.Errorf("list transactions: %w", err)
	}

	return core.ListResult{Total: total, Transactions: txs}, nil
}
