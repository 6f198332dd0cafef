// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"callguard/internal/middleware"
	"callguard/internal/models"
	"callguard/internal/store"
)

// Calls groups the blocked-call history endpoints.
type Calls struct {
	store      *store.BlockedCallStore
	numbers    *store.SpamNumberStore
	categories *store.CategoryStore
	validator  *validator.Validate
}

// NewCalls creates a new Calls handler group.
func NewCalls(calls *store.BlockedCallStore, numbers *store.SpamNumberStore, categories *store.CategoryStore) *Calls {
	return &Calls{
		store:      calls,
		numbers:    numbers,
		categories: categories,
		validator:  validator.New(),
	}
}

// List returns the caller's visible history, newest first.
// GET /api/call-history?limit=
func (h *Calls) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	calls, err := h.store.List(middleware.ScopeFromCtx(r.Context()), limit)
	if err != nil {
		slog.Error("call history list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, calls)
}

type logCallRequest struct {
	PhoneNumber string  `json:"phone_number" validate:"required,max=30"`
	CategoryID  *string `json:"category_id"`
	Notes       string  `json:"notes" validate:"max=1000"`
}

// Create logs a blocked call. The category is resolved in order:
// explicit category_id, then a registry match on the number, then the
// unknown fallback.
// POST /api/call-history
func (h *Calls) Create(w http.ResponseWriter, r *http.Request) {
	var req logCallRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "phone_number is required")
		return
	}

	categoryID, categoryName, err := h.resolveCategory(req)
	if err != nil {
		slog.Error("call category resolution failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	call, err := h.store.Create(req.PhoneNumber, categoryID, categoryName, req.Notes, middleware.OwnerFromCtx(r.Context()))
	if err != nil {
		slog.Error("call history create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, call)
}

// resolveCategory applies the category cascade for a logged call.
func (h *Calls) resolveCategory(req logCallRequest) (*string, string, error) {
	if req.CategoryID != nil && *req.CategoryID != "" {
		name, err := h.categories.ResolveName(*req.CategoryID)
		if err != nil {
			return nil, "", err
		}
		return req.CategoryID, name, nil
	}

	match, err := h.numbers.FindByPhone(req.PhoneNumber)
	if err != nil {
		return nil, "", err
	}
	if match != nil {
		id := match.CategoryID
		return &id, match.CategoryName, nil
	}

	return nil, models.UnknownCategoryName, nil
}

// Delete removes one history entry.
// DELETE /api/call-history/{id}
func (h *Calls) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "History entry deleted"})
}

// Clear bulk-deletes the caller's history (anonymous history for
// anonymous callers).
// DELETE /api/call-history
func (h *Calls) Clear(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.Clear(middleware.OwnerFromCtx(r.Context()))
	if err != nil {
		slog.Error("call history clear failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
