// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP API. Handlers are grouped
// per resource; each group is a struct wired with its stores in main.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"callguard/internal/models"
)

// errorBody is the error envelope used by every endpoint.
type errorBody struct {
	Detail string `json:"detail"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError writes the JSON error envelope.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

// writeStoreError maps store sentinel errors onto API status codes and
// logs everything else as a 500.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, models.ErrImmutable):
		writeError(w, http.StatusBadRequest, "Default categories cannot be deleted")
	case errors.Is(err, models.ErrForbidden):
		writeError(w, http.StatusForbidden, "Not allowed to delete this category")
	default:
		slog.Error("store operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// decodeBody decodes the request body into dst. Returns false (and writes
// a 400) when the body is not valid JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
