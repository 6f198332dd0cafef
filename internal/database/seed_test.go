package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed only fills empty collections, so calling it twice must be safe
	// and must not duplicate rows. We don't clear the database first
	// because other test packages may be running against it concurrently.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	// Every default category must exist exactly once.
	var catCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories WHERE is_custom = FALSE").Scan(&catCount); err != nil {
		t.Fatalf("count default categories: %v", err)
	}
	if catCount != len(defaultCategories) {
		t.Errorf("default categories: got %d, want %d", catCount, len(defaultCategories))
	}

	// Seeded spam numbers are present with resolved category names.
	var spamCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM spam_numbers WHERE source = 'database'").Scan(&spamCount); err != nil {
		t.Fatalf("count seeded spam numbers: %v", err)
	}
	if spamCount < len(defaultSpamNumbers) {
		t.Errorf("seeded spam numbers: got %d, want at least %d", spamCount, len(defaultSpamNumbers))
	}

	var catName string
	if err := db.QueryRow("SELECT category_name FROM spam_numbers WHERE phone_number = '+33949000000'").Scan(&catName); err != nil {
		t.Fatalf("lookup seeded CPF number: %v", err)
	}
	if catName != "CPF/Formation" {
		t.Errorf("seeded CPF category name: got %q, want %q", catName, "CPF/Formation")
	}

	// The anonymous settings sentinel exists.
	var anonCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM user_settings WHERE id = 'anonymous'").Scan(&anonCount); err != nil {
		t.Fatalf("count anonymous settings: %v", err)
	}
	if anonCount != 1 {
		t.Errorf("anonymous settings rows: got %d, want 1", anonCount)
	}
}
