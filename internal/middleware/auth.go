// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"callguard/internal/scope"
	"callguard/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"
)

// LoadIdentity resolves the session cookie against Valkey and stores the
// session data in the request context. Downstream handlers read it via
// SessionFromCtx() or ScopeFromCtx(). This middleware does NOT enforce
// authentication — an absent or expired session simply yields the
// anonymous scope.
func LoadIdentity(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err != nil {
				// Log but don't block — treat as unauthenticated.
				slog.Warn("session lookup failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if data != nil {
				ctx := context.WithValue(r.Context(), SessionKey, data)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireIdentity rejects unauthenticated requests with 401.
// Must be applied after LoadIdentity in the middleware chain.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromCtx(r.Context()) == nil {
			jsonError(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if no session is loaded (caller is not authenticated).
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}

// OwnerFromCtx returns the authenticated user's ID, or nil for anonymous
// callers.
func OwnerFromCtx(ctx context.Context) *uuid.UUID {
	sess := SessionFromCtx(ctx)
	if sess == nil {
		return nil
	}
	id := sess.UserID
	return &id
}

// ScopeFromCtx returns the record-visibility scope for the request:
// global-only for anonymous callers, global plus own records otherwise.
func ScopeFromCtx(ctx context.Context) scope.Scope {
	sess := SessionFromCtx(ctx)
	if sess == nil {
		return scope.Global()
	}
	return scope.ForUser(sess.UserID)
}
