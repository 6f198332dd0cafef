// Package router sets up all HTTP routes and middleware chains for the
// CallGuard API. Everything under /api shares one middleware stack;
// liveness and metrics sit outside it.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"callguard/internal/handlers"
	"callguard/internal/middleware"
	"callguard/internal/session"
)

// Deps carries the handler groups and shared infrastructure the router
// wires together.
type Deps struct {
	Sessions    *session.Store
	Auth        *handlers.Auth
	Categories  *handlers.Categories
	SpamNumbers *handlers.SpamNumbers
	Calls       *handlers.Calls
	Settings    *handlers.Settings
	Statistics  *handlers.Statistics
	Sync        *handlers.Sync
	CORSOrigins []string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Metrics)

	// Liveness and metrics — no auth, no CORS.
	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Write endpoints that grow the shared registry get a rate limit.
	reportLimiter := middleware.NewRateLimiter(30, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Use(middleware.LoadIdentity(d.Sessions))

		r.Get("/", handlers.Banner)
		r.Get("/health", handlers.Health)

		// Session exchange with the external identity provider.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/session", d.Auth.CreateSession)
			r.Get("/me", d.Auth.Me)
			r.Post("/logout", d.Auth.Logout)
		})

		// Categories
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", d.Categories.List)
			r.Post("/", d.Categories.Create)
			r.Delete("/{id}", d.Categories.Delete)
		})

		// Spam registry
		r.Route("/spam-numbers", func(r chi.Router) {
			r.Get("/", d.SpamNumbers.List)
			r.With(reportLimiter.Middleware).Post("/", d.SpamNumbers.Report)
			r.Delete("/{id}", d.SpamNumbers.Remove)
		})
		r.Get("/check-number/{number}", d.SpamNumbers.CheckNumber)

		// Blocked-call history
		r.Route("/call-history", func(r chi.Router) {
			r.Get("/", d.Calls.List)
			r.Post("/", d.Calls.Create)
			r.Delete("/", d.Calls.Clear)
			r.Delete("/{id}", d.Calls.Delete)
		})

		// Settings
		r.Get("/settings", d.Settings.Get)
		r.Put("/settings", d.Settings.Update)

		// Statistics
		r.Get("/statistics", d.Statistics.Get)

		// Sync
		r.With(reportLimiter.Middleware).Post("/sync-database", d.Sync.SyncDatabase)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireIdentity)
			r.With(reportLimiter.Middleware).Post("/sync-user-data", d.Sync.SyncUserData)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
