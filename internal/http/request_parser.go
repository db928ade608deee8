// Package http provides the HTTP server and handler implementations.
//
// This file implements parsing of the shared query parameters. There is no
// validation error class: malformed values silently fall back to defaults
// and an unknown month name becomes a filter matching nothing.
package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"salestats/internal/core"
)

// ParseListQuery extracts month, search and pagination from query
// parameters with the listing defaults applied.
func ParseListQuery(query url.Values) core.ListQuery {
	q := core.ListQuery{
		Month:  ParseMonthParam(query),
		Search: sanitizeInput(query.Get("search")),
	}

	if v := strings.TrimSpace(query.Get("page")); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			q.Page = p
		}
	}
	if v := strings.TrimSpace(query.Get("perPage")); v != "" {
		if pp, err := strconv.Atoi(v); err == nil {
			q.PerPage = pp
		}
	}

	return q.Normalize()
}

// ParseMonthParam extracts the month token from the month parameter.
func ParseMonthParam(query url.Values) core.MonthToken {
	return core.MonthFromName(query.Get("month"))
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
