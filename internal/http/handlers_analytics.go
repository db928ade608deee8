package http

import (
	"net/http"

	"salestats/internal/log"
)

// handleStatistics serves the month-scoped sum/count aggregates.
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError(http.MethodGet).Write(w)
		return
	}

	month := ParseMonthParam(r.URL.Query())
	stats, err := s.analytics.Statistics(r.Context(), month)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Statistics failed",
			log.FieldOperation, log.OpStats, log.FieldError, err, log.FieldMonth, month.String())
		InternalServerError("Failed to fetch statistics").Write(w)
		return
	}

	NewJSONResponse().Body(stats).Write(w)
}

// handleBarChart serves the fixed ten-bucket price histogram.
func (s *Server) handleBarChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError(http.MethodGet).Write(w)
		return
	}

	month := ParseMonthParam(r.URL.Query())
	buckets, err := s.analytics.BarChart(r.Context(), month)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Bar chart failed",
			log.FieldOperation, log.OpBarChart, log.FieldError, err, log.FieldMonth, month.String())
		InternalServerError("Failed to fetch bar chart data").Write(w)
		return
	}

	NewJSONResponse().Body(buckets).Write(w)
}

// handlePieChart serves the per-category counts. Group order is
// store-dependent and not part of the contract.
func (s *Server) handlePieChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError(http.MethodGet).Write(w)
		return
	}

	month := ParseMonthParam(r.URL.Query())
	categories, err := s.analytics.PieChart(r.Context(), month)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Pie chart failed",
			log.FieldOperation, log.OpPieChart, log.FieldError, err, log.FieldMonth, month.String())
		InternalServerError("Failed to fetch pie chart data").Write(w)
		return
	}

	NewJSONResponse().Body(categories).Write(w)
}

// handleCombinedData serves the merged analytics payload. The three
// sub-queries are internal calls run concurrently; one failure fails the
// whole response.
func (s *Server) handleCombinedData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError(http.MethodGet).Write(w)
		return
	}

	month := ParseMonthParam(r.URL.Query())
	combined, err := s.analytics.CombinedData(r.Context(), month)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Combined data failed",
			log.FieldOperation, log.OpCombined, log.FieldError, err, log.FieldMonth, month.String())
		InternalServerError("Failed to fetch combined data").Write(w)
		return
	}

	NewJSONResponse().Body(combined).Write(w)
}
