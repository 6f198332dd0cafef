// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"callguard/internal/models"
)

func TestSettingsGetOrCreate(t *testing.T) {
	db := testDB(t)
	s := NewUserSettingsStore(db)
	u := testUser(t, db)

	first, err := s.GetOrCreate(&u.ID)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if first.UserID == nil || *first.UserID != u.ID {
		t.Error("settings row should carry the owner")
	}
	if first.BlockUnknownNumbers || !first.NotificationsEnabled || !first.AutoBlockSpam {
		t.Errorf("unexpected defaults: %+v", first)
	}

	second, err := s.GetOrCreate(&u.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("repeated get should return the same row, got %s vs %s", second.ID, first.ID)
	}
}

func TestSettingsAnonymousSentinel(t *testing.T) {
	db := testDB(t)
	s := NewUserSettingsStore(db)

	got, err := s.GetOrCreate(nil)
	if err != nil {
		t.Fatalf("get anonymous settings: %v", err)
	}
	if got.ID != models.AnonymousSettingsID {
		t.Errorf("anonymous settings should use the sentinel id, got %q", got.ID)
	}
	if got.UserID != nil {
		t.Error("anonymous settings must not carry an owner")
	}
}

func TestSettingsPartialUpdate(t *testing.T) {
	db := testDB(t)
	s := NewUserSettingsStore(db)
	u := testUser(t, db)

	before, err := s.GetOrCreate(&u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	block := true
	after, err := s.Update(&u.ID, &models.UserSettingsUpdate{BlockUnknownNumbers: &block})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !after.BlockUnknownNumbers {
		t.Error("updated field should change")
	}
	if after.NotificationsEnabled != before.NotificationsEnabled || after.AutoBlockSpam != before.AutoBlockSpam {
		t.Error("fields absent from the update must keep their values")
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Error("updated_at should advance")
	}
}
