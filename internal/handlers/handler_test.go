// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"callguard/internal/cache"
	"callguard/internal/database"
	"callguard/internal/middleware"
	"callguard/internal/session"
	"callguard/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL, runs migrations and
// seeds the default data.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "callguard")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "callguard")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	if err := database.Seed(db); err != nil {
		db.Close()
		t.Fatalf("seed: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "check:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Valkey        *redis.Client
	Sessions      *session.Store
	UserStore     *store.UserStore
	CategoryStore *store.CategoryStore
	SpamStore     *store.SpamNumberStore
	CallStore     *store.BlockedCallStore
	SettingsStore *store.UserSettingsStore
	LookupCache   *cache.LookupCache
	Auth          *Auth
	Categories    *Categories
	SpamNumbers   *SpamNumbers
	Calls         *Calls
	Settings      *Settings
	Statistics    *Statistics
	Sync          *Sync
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	spamStore := store.NewSpamNumberStore(db, categoryStore)
	callStore := store.NewBlockedCallStore(db)
	settingsStore := store.NewUserSettingsStore(db)
	statsStore := store.NewStatisticsStore(db)
	lookupCache := cache.NewLookupCache(vk, 1*time.Minute)

	return &testEnv{
		DB:            db,
		Valkey:        vk,
		Sessions:      sessions,
		UserStore:     userStore,
		CategoryStore: categoryStore,
		SpamStore:     spamStore,
		CallStore:     callStore,
		SettingsStore: settingsStore,
		LookupCache:   lookupCache,
		Auth:          nil, // built per-test with an httptest provider
		Categories:    NewCategories(categoryStore),
		SpamNumbers:   NewSpamNumbers(spamStore, lookupCache),
		Calls:         NewCalls(callStore, spamStore, categoryStore),
		Settings:      NewSettings(settingsStore),
		Statistics:    NewStatistics(statsStore),
		Sync:          NewSync(spamStore, categoryStore, callStore, lookupCache),
	}
}

// testUser inserts a throwaway user and registers cleanup.
func testUser(t *testing.T, env *testEnv) uuid.UUID {
	t.Helper()
	u, err := env.UserStore.UpsertByExternalID("test-ext-"+uuid.NewString(), "handler-test@callguard.local", "Handler Test", "")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u.ID
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for testing.
func testSession(userID uuid.UUID) *session.Data {
	return &session.Data{
		UserID: userID,
		Email:  "handler-test@callguard.local",
		Name:   "Handler Test",
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
