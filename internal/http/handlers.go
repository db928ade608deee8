package http

import (
	"net/http"
	"strconv"
	"time"

	"salestats/internal/core"
	"salestats/internal/log"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleInitialize wipes the store and bulk-loads the upstream dataset.
// Both the upstream fetch and the store write surface as the generic
// server error; nothing is retried.
func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError(http.MethodGet).Write(w)
		return
	}

	count, err := s.seeder.Reseed(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Reseed failed",
			log.FieldOperation, log.OpReseed, log.FieldError, err)
		InternalServerError("Failed to initialize database").Write(w)
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Database initialized",
		log.FieldOperation, log.OpReseed, log.FieldCount, count)
	NewJSONResponse().Body(messageBody{Message: "Database initialized with seed data"}).Write(w)
}

// handleIndex renders the listing UI: month selector, search box and a
// paginated transaction table, driven by the same query layer as the API.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded",
			log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	monthName := query.Get("month")
	if monthName == "" {
		monthName = "March"
	}
	q := core.ListQuery{
		Month:  core.MonthFromName(monthName),
		Search: sanitizeInput(query.Get("search")),
		Page:   atoiDefault(query.Get("page"), core.DefaultPage),
	}
	q = q.Normalize()

	result, err := s.listTransactions(r.Context(), q)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Listing for index failed",
			log.FieldError, err, log.FieldMonth, monthName)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	months := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, m.String())
	}

	data := struct {
		Months     []string
		Month      string
		Search     string
		Page       int
		TotalPages int
		Result     core.ListResult
	}{
		Months:     months,
		Month:      monthName,
		Search:     q.Search,
		Page:       q.Page,
		TotalPages: result.PageCount(q.PerPage),
		Result:     result,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Index template execution failed",
			log.FieldError, err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
