package handlers

import (
	"log/slog"
	"net/http"

	"callguard/internal/middleware"
	"callguard/internal/store"
)

// Statistics serves the dashboard aggregate.
type Statistics struct {
	store *store.StatisticsStore
}

// NewStatistics creates a new Statistics handler group.
func NewStatistics(s *store.StatisticsStore) *Statistics {
	return &Statistics{store: s}
}

// Get returns blocking counters for the caller's scope plus the global
// registry size.
// GET /api/statistics
func (h *Statistics) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Aggregate(middleware.ScopeFromCtx(r.Context()))
	if err != nil {
		slog.Error("statistics aggregate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
