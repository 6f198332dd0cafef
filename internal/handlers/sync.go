// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"callguard/internal/cache"
	"callguard/internal/middleware"
	"callguard/internal/models"
	"callguard/internal/store"
)

// Sync groups the registry import endpoints. SyncDatabase simulates an
// external feed with random numbers; SyncUserData lets an authenticated
// client push its locally collected reports and call history.
type Sync struct {
	numbers    *store.SpamNumberStore
	categories *store.CategoryStore
	calls      *store.BlockedCallStore
	lookups    *cache.LookupCache
	validator  *validator.Validate
}

// NewSync creates a new Sync handler group.
func NewSync(numbers *store.SpamNumberStore, categories *store.CategoryStore, calls *store.BlockedCallStore, lookups *cache.LookupCache) *Sync {
	return &Sync{
		numbers:    numbers,
		categories: categories,
		calls:      calls,
		lookups:    lookups,
		validator:  validator.New(),
	}
}

// syncPrefixes are the French number ranges the simulated feed draws
// from: mobile prefixes plus the 0949/0970 premium ranges common in
// telemarketing.
var syncPrefixes = []string{"+3316", "+3317", "+3318", "+3319", "+33949", "+33970"}

// syncCategories are the default categories the simulated feed assigns.
var syncCategories = []string{"commercial", "energy", "insurance", "cpf", "scam", "telecom"}

// SyncDatabase simulates a sync with an external spam feed by inserting
// up to five random numbers. Known numbers are skipped, not updated.
// POST /api/sync-database
func (h *Sync) SyncDatabase(w http.ResponseWriter, r *http.Request) {
	added := 0
	for i := 0; i < 5; i++ {
		prefix := syncPrefixes[rand.Intn(len(syncPrefixes))]
		number := fmt.Sprintf("%s%06d", prefix, 100000+rand.Intn(900000))
		categoryID := syncCategories[rand.Intn(len(syncCategories))]

		name, err := h.categories.ResolveName(categoryID)
		if err != nil {
			slog.Error("sync category lookup failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		inserted, err := h.numbers.InsertIfAbsent(&models.SpamNumber{
			PhoneNumber:  number,
			CategoryID:   categoryID,
			CategoryName: name,
			Source:       models.SourceSync,
			ReportsCount: 10 + rand.Intn(91),
			IsActive:     true,
		})
		if err != nil {
			slog.Error("sync insert failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if inserted {
			added++
		}
	}

	if added > 0 {
		h.lookups.InvalidateAll(r.Context())
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "Base de données synchronisée",
		"new_numbers_added": added,
		"sync_time":         time.Now().UTC().Format(time.RFC3339),
	})
}

type syncUserEntry struct {
	PhoneNumber string `json:"phone_number" validate:"required,max=30"`
	CategoryID  string `json:"category_id" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type syncCallEntry struct {
	PhoneNumber string `json:"phone_number" validate:"required,max=30"`
	CategoryID  string `json:"category_id" validate:"max=100"`
	Notes       string `json:"notes" validate:"max=1000"`
}

type syncUserDataRequest struct {
	Numbers []syncUserEntry `json:"numbers" validate:"max=500,dive"`
	Calls   []syncCallEntry `json:"calls" validate:"max=500,dive"`
}

// SyncUserData bulk-imports a client's locally collected reports and
// call history under the caller's ownership. Requires an authenticated
// caller. Numbers replay through the same dedup path as a single
// report: unknown numbers are created with the caller as owner, known
// numbers get their counter bumped. Calls are appended to the caller's
// history with the usual category fallback.
// POST /api/sync-user-data
func (h *Sync) SyncUserData(w http.ResponseWriter, r *http.Request) {
	owner := middleware.OwnerFromCtx(r.Context())
	if owner == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req syncUserDataRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil || len(req.Numbers)+len(req.Calls) == 0 {
		writeError(w, http.StatusBadRequest, "numbers or calls is required (at most 500 entries each)")
		return
	}

	added := 0
	for _, entry := range req.Numbers {
		n, err := h.numbers.Report(entry.PhoneNumber, entry.CategoryID, entry.Description, owner)
		if err != nil {
			slog.Error("user sync report failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if n.ReportsCount == 1 {
			added++
		}
		h.lookups.Invalidate(r.Context(), entry.PhoneNumber)
	}

	callsAdded := 0
	for _, entry := range req.Calls {
		categoryID, categoryName, err := h.resolveCallCategory(entry)
		if err != nil {
			slog.Error("user sync call category lookup failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if _, err := h.calls.Create(entry.PhoneNumber, categoryID, categoryName, entry.Notes, owner); err != nil {
			slog.Error("user sync call insert failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		callsAdded++
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "Données synchronisées",
		"new_numbers_added": added,
		"calls_added":       callsAdded,
		"received":          len(req.Numbers) + len(req.Calls),
	})
}

// resolveCallCategory mirrors the logged-call cascade: explicit
// category, then a registry match, then the unknown fallback.
func (h *Sync) resolveCallCategory(entry syncCallEntry) (*string, string, error) {
	if entry.CategoryID != "" {
		name, err := h.categories.ResolveName(entry.CategoryID)
		if err != nil {
			return nil, "", err
		}
		id := entry.CategoryID
		return &id, name, nil
	}

	match, err := h.numbers.FindByPhone(entry.PhoneNumber)
	if err != nil {
		return nil, "", err
	}
	if match != nil {
		id := match.CategoryID
		return &id, match.CategoryName, nil
	}

	return nil, models.UnknownCategoryName, nil
}
