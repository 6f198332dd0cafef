// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"callguard/internal/middleware"
	"callguard/internal/models"
	"callguard/internal/store"
)

// Settings groups the per-user preferences endpoints. Anonymous callers
// share the sentinel settings row.
type Settings struct {
	store *store.UserSettingsStore
}

// NewSettings creates a new Settings handler group.
func NewSettings(s *store.UserSettingsStore) *Settings {
	return &Settings{store: s}
}

// Get returns the caller's settings, creating defaults on first access.
// GET /api/settings
func (h *Settings) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.GetOrCreate(middleware.OwnerFromCtx(r.Context()))
	if err != nil {
		slog.Error("settings get failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// Update applies a partial settings change; absent fields are untouched.
// PUT /api/settings
func (h *Settings) Update(w http.ResponseWriter, r *http.Request) {
	var upd models.UserSettingsUpdate
	if !decodeBody(w, r, &upd) {
		return
	}

	settings, err := h.store.Update(middleware.OwnerFromCtx(r.Context()), &upd)
	if err != nil {
		slog.Error("settings update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
