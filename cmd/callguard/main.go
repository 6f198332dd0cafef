// Package main is the entry point for the CallGuard API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"callguard/internal/auth"
	"callguard/internal/cache"
	"callguard/internal/config"
	"callguard/internal/database"
	"callguard/internal/handlers"
	"callguard/internal/router"
	"callguard/internal/session"
	"callguard/internal/store"
)

func main() {
	// Structured logger — text output keeps container logs readable.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed defaults on first startup (no-op once data exists). The default
	// categories and the starter spam set are part of the product, so this
	// runs in every environment.
	if err := database.Seed(db); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (session store + lookup cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Data stores.
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	spamStore := store.NewSpamNumberStore(db, categoryStore)
	callStore := store.NewBlockedCallStore(db)
	settingsStore := store.NewUserSettingsStore(db)
	statsStore := store.NewStatisticsStore(db)

	// Spam-check verdict cache.
	lookupCache := cache.NewLookupCache(valkeyClient, cache.DefaultLookupTTL)

	// External identity provider client.
	provider := auth.NewProvider(cfg.AuthProviderURL)

	// Handler groups.
	authHandlers := handlers.NewAuth(provider, sessionStore, userStore)
	categoryHandlers := handlers.NewCategories(categoryStore)
	spamHandlers := handlers.NewSpamNumbers(spamStore, lookupCache)
	callHandlers := handlers.NewCalls(callStore, spamStore, categoryStore)
	settingsHandlers := handlers.NewSettings(settingsStore)
	statsHandlers := handlers.NewStatistics(statsStore)
	syncHandlers := handlers.NewSync(spamStore, categoryStore, callStore, lookupCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Deps{
		Sessions:    sessionStore,
		Auth:        authHandlers,
		Categories:  categoryHandlers,
		SpamNumbers: spamHandlers,
		Calls:       callHandlers,
		Settings:    settingsHandlers,
		Statistics:  statsHandlers,
		Sync:        syncHandlers,
		CORSOrigins: cfg.AllowedOrigins,
	})

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
