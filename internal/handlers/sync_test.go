package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"callguard/internal/models"
	"callguard/internal/scope"
)

func TestSyncDatabaseStub(t *testing.T) {
	env := newTestEnv(t)
	// Synthetic numbers pile up across runs; drop this run's additions.
	t.Cleanup(func() { env.DB.Exec("DELETE FROM spam_numbers WHERE source = 'sync' AND user_id IS NULL") })

	req := httptest.NewRequest(http.MethodPost, "/api/sync-database", nil)
	rr := httptest.NewRecorder()
	env.Sync.SyncDatabase(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var body map[string]any
	json.Unmarshal(rr.Body.Bytes(), &body)
	if _, ok := body["new_numbers_added"]; !ok {
		t.Error("response should carry new_numbers_added")
	}
	if body["message"] == "" {
		t.Error("response should carry a message")
	}

	added, _ := body["new_numbers_added"].(float64)
	if added < 0 || added > 5 {
		t.Errorf("new_numbers_added out of range: %v", added)
	}
}

func TestSyncUserDataRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sync-user-data",
		strings.NewReader(`{"numbers":[{"phone_number":"+33612345678","category_id":"scam"}]}`))
	rr := httptest.NewRecorder()
	env.Sync.SyncUserData(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestSyncUserDataImport(t *testing.T) {
	env := newTestEnv(t)
	owner := testUser(t, env)
	phone := handlerTestPhone()
	t.Cleanup(func() { env.DB.Exec("DELETE FROM spam_numbers WHERE phone_number = $1", phone) })

	body := fmt.Sprintf(`{"numbers":[{"phone_number":%q,"category_id":"scam","description":"imported"}]}`, phone)
	req := httptest.NewRequest(http.MethodPost, "/api/sync-user-data", strings.NewReader(body))
	req = req.WithContext(ctxWithSession(req.Context(), testSession(owner)))
	rr := httptest.NewRecorder()
	env.Sync.SyncUserData(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var res map[string]any
	json.Unmarshal(rr.Body.Bytes(), &res)
	if added, _ := res["new_numbers_added"].(float64); added != 1 {
		t.Errorf("new_numbers_added: got %v, want 1", added)
	}

	// Imported entries carry the caller's ownership and user provenance,
	// exactly like a single report.
	n, err := env.SpamStore.FindByPhone(phone)
	if err != nil || n == nil {
		t.Fatalf("imported number missing: %v", err)
	}
	if n.Source != models.SourceUser {
		t.Errorf("source: got %q, want %q", n.Source, models.SourceUser)
	}
	if n.UserID == nil || *n.UserID != owner {
		t.Errorf("owner: got %v, want %s", n.UserID, owner)
	}
	if n.ReportsCount != 1 {
		t.Errorf("reports_count: got %d, want 1", n.ReportsCount)
	}

	// A second import of the same number bumps the counter instead of
	// creating a duplicate.
	req = httptest.NewRequest(http.MethodPost, "/api/sync-user-data", strings.NewReader(body))
	req = req.WithContext(ctxWithSession(req.Context(), testSession(owner)))
	rr = httptest.NewRecorder()
	env.Sync.SyncUserData(rr, req)

	json.Unmarshal(rr.Body.Bytes(), &res)
	if added, _ := res["new_numbers_added"].(float64); added != 0 {
		t.Errorf("repeat import new_numbers_added: got %v, want 0", added)
	}
	n, err = env.SpamStore.FindByPhone(phone)
	if err != nil || n == nil {
		t.Fatalf("imported number missing after repeat: %v", err)
	}
	if n.ReportsCount != 2 {
		t.Errorf("repeat import reports_count: got %d, want 2", n.ReportsCount)
	}
}

func TestSyncUserDataCallHistory(t *testing.T) {
	env := newTestEnv(t)
	owner := testUser(t, env)
	phone := handlerTestPhone()
	t.Cleanup(func() { env.DB.Exec("DELETE FROM blocked_calls WHERE phone_number = $1", phone) })

	body := fmt.Sprintf(`{"calls":[{"phone_number":%q,"category_id":"scam","notes":"synced"}]}`, phone)
	req := httptest.NewRequest(http.MethodPost, "/api/sync-user-data", strings.NewReader(body))
	req = req.WithContext(ctxWithSession(req.Context(), testSession(owner)))
	rr := httptest.NewRecorder()
	env.Sync.SyncUserData(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var res map[string]any
	json.Unmarshal(rr.Body.Bytes(), &res)
	if added, _ := res["calls_added"].(float64); added != 1 {
		t.Errorf("calls_added: got %v, want 1", added)
	}

	calls, err := env.CallStore.List(scope.ForUser(owner), 10)
	if err != nil {
		t.Fatalf("list calls: %v", err)
	}
	found := false
	for _, c := range calls {
		if c.PhoneNumber == phone {
			found = true
			if c.CategoryName != "Arnaque" {
				t.Errorf("category_name: got %q, want %q", c.CategoryName, "Arnaque")
			}
			if c.UserID == nil || *c.UserID != owner {
				t.Errorf("call owner: got %v, want %s", c.UserID, owner)
			}
		}
	}
	if !found {
		t.Error("synced call missing from the owner's history")
	}
}

func TestSyncUserDataValidation(t *testing.T) {
	env := newTestEnv(t)
	owner := testUser(t, env)

	for _, body := range []string{`{"numbers":[]}`, `{}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/sync-user-data", strings.NewReader(body))
		req = req.WithContext(ctxWithSession(req.Context(), testSession(owner)))
		rr := httptest.NewRecorder()
		env.Sync.SyncUserData(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %s: status got %d, want 400", body, rr.Code)
		}
	}
}
