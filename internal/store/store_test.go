// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"callguard/internal/database"
	"callguard/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "callguard")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "callguard")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	if err := database.Seed(db); err != nil {
		db.Close()
		t.Fatalf("failed to seed database: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser inserts a throwaway user and registers cleanup. The cascade
// on user_settings and SET NULL on the other tables keep the schema
// consistent after deletion.
func testUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()

	s := NewUserStore(db)
	u, err := s.UpsertByExternalID("test-ext-"+uuid.NewString(), "store-test@callguard.local", "Store Test", "")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u
}

// cleanCategories removes test categories by id. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, ids ...string) {
	t.Helper()
	for _, id := range ids {
		db.Exec("DELETE FROM categories WHERE id = $1", id)
	}
}

// cleanSpamNumbers removes test entries by phone number. Call in t.Cleanup().
func cleanSpamNumbers(t *testing.T, db *sql.DB, numbers ...string) {
	t.Helper()
	for _, n := range numbers {
		db.Exec("DELETE FROM spam_numbers WHERE phone_number = $1", n)
	}
}

// cleanBlockedCalls removes test history entries by phone number. Call in t.Cleanup().
func cleanBlockedCalls(t *testing.T, db *sql.DB, numbers ...string) {
	t.Helper()
	for _, n := range numbers {
		db.Exec("DELETE FROM blocked_calls WHERE phone_number = $1", n)
	}
}

// testPhone returns a unique phone-number-looking string so concurrent
// test runs don't collide on the global uniqueness constraint.
func testPhone() string {
	return "+3390" + uuid.NewString()[:8]
}
