// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"callguard/internal/middleware"
	"callguard/internal/store"
)

// Categories groups the category endpoints.
type Categories struct {
	store     *store.CategoryStore
	validator *validator.Validate
}

// NewCategories creates a new Categories handler group.
func NewCategories(s *store.CategoryStore) *Categories {
	return &Categories{store: s, validator: validator.New()}
}

// List returns the categories visible to the caller: defaults, shared
// customs, and the caller's own.
// GET /api/categories
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.store.ListVisible(middleware.ScopeFromCtx(r.Context()))
	if err != nil {
		slog.Error("category list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"max=20"`
	Icon        string `json:"icon" validate:"max=50"`
}

// Create adds a custom category owned by the caller (shared when the
// caller is anonymous).
// POST /api/categories
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "name is required (max 100 characters)")
		return
	}

	cat, err := h.store.Create(req.Name, req.Description, req.Color, req.Icon, middleware.OwnerFromCtx(r.Context()))
	if err != nil {
		slog.Error("category create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// Delete removes a custom category. Defaults are immutable; another
// user's category is off limits.
// DELETE /api/categories/{id}
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(id, middleware.OwnerFromCtx(r.Context())); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
