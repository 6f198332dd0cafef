// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"callguard/internal/cache"
	"callguard/internal/middleware"
	"callguard/internal/models"
	"callguard/internal/store"
)

// SpamNumbers groups the registry endpoints: listing, reporting, removal
// and the incoming-call check. Check verdicts go through the Valkey
// lookup cache; every write invalidates the affected number.
type SpamNumbers struct {
	store     *store.SpamNumberStore
	lookups   *cache.LookupCache
	validator *validator.Validate
}

// NewSpamNumbers creates a new SpamNumbers handler group.
func NewSpamNumbers(s *store.SpamNumberStore, lookups *cache.LookupCache) *SpamNumbers {
	return &SpamNumbers{store: s, lookups: lookups, validator: validator.New()}
}

// List returns active numbers visible to the caller, most reported first.
// GET /api/spam-numbers?category_id=&search=
func (h *SpamNumbers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	numbers, err := h.store.ListVisible(
		middleware.ScopeFromCtx(r.Context()),
		q.Get("category_id"),
		q.Get("search"),
	)
	if err != nil {
		slog.Error("spam number list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, numbers)
}

type reportRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,max=30"`
	CategoryID  string `json:"category_id" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// Report adds a number to the registry, or bumps its counter when it is
// already known. The response always carries the stored record.
// POST /api/spam-numbers
func (h *SpamNumbers) Report(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "phone_number and category_id are required")
		return
	}

	n, err := h.store.Report(req.PhoneNumber, req.CategoryID, req.Description, middleware.OwnerFromCtx(r.Context()))
	if err != nil {
		slog.Error("spam number report failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.lookups.Invalidate(r.Context(), n.PhoneNumber)
	writeJSON(w, http.StatusOK, n)
}

// Remove deletes a registry entry by ID.
// DELETE /api/spam-numbers/{id}
func (h *SpamNumbers) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Look the number up first so the cached verdict can be dropped.
	var phone string
	n, err := h.store.FindByID(id)
	if err != nil {
		// The delete still proceeds; worst case the stale verdict lives
		// until the cache TTL runs out.
		slog.Warn("spam number lookup before removal failed", "id", id, "error", err)
	}
	if n != nil {
		phone = n.PhoneNumber
	}

	if err := h.store.Remove(id); err != nil {
		writeStoreError(w, err)
		return
	}

	if phone != "" {
		h.lookups.Invalidate(r.Context(), phone)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Number removed"})
}

// CheckNumber answers the incoming-call question: is this number spam?
// The check is global — user-reported numbers protect everyone.
// GET /api/check-number/{number}
func (h *SpamNumbers) CheckNumber(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	if verdict, ok := h.lookups.Get(r.Context(), number); ok {
		writeJSON(w, http.StatusOK, verdict)
		return
	}

	n, err := h.store.FindActiveByPhone(number)
	if err != nil {
		slog.Error("spam check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	verdict := &models.CheckResult{}
	if n != nil {
		verdict.IsSpam = true
		verdict.Category = n.CategoryName
		verdict.ReportsCount = n.ReportsCount
		verdict.Description = n.Description
		verdict.Source = n.Source
	}

	h.lookups.Set(r.Context(), number, verdict)
	writeJSON(w, http.StatusOK, verdict)
}
