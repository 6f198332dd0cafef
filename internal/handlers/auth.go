// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"callguard/internal/auth"
	"callguard/internal/middleware"
	"callguard/internal/session"
	"callguard/internal/store"
)

// Auth groups the session-exchange endpoints. Identity is established by
// an external provider; this API only exchanges its tokens for cookie
// sessions.
type Auth struct {
	provider  *auth.Provider
	sessions  *session.Store
	userStore *store.UserStore
	validator *validator.Validate
}

// NewAuth creates a new Auth handler group.
func NewAuth(provider *auth.Provider, sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		provider:  provider,
		sessions:  sessions,
		userStore: userStore,
		validator: validator.New(),
	}
}

type createSessionRequest struct {
	SessionToken string `json:"session_token" validate:"required"`
}

// CreateSession exchanges an identity-provider token for a cookie session.
// POST /api/auth/session
func (a *Auth) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := a.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "session_token is required")
		return
	}

	identity, err := a.provider.Verify(r.Context(), req.SessionToken)
	if errors.Is(err, auth.ErrInvalidToken) {
		writeError(w, http.StatusUnauthorized, "Invalid session token")
		return
	}
	if err != nil {
		slog.Error("identity provider exchange failed", "error", err)
		writeError(w, http.StatusBadGateway, "Identity provider unavailable")
		return
	}

	user, err := a.userStore.UpsertByExternalID(identity.ExternalID, identity.Email, identity.Name, identity.Picture)
	if err != nil {
		slog.Error("user upsert failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.Picture,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Me returns the authenticated caller's profile.
// GET /api/auth/me
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil {
		slog.Error("user lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if user == nil {
		// Session outlived the account.
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Logout destroys the session and clears the cookie. Always succeeds,
// even without a session.
// POST /api/auth/logout
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
