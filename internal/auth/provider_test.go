package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVerifyValidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/verify" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			SessionToken string `json:"session_token"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.SessionToken != "tok-123" {
			t.Errorf("token: got %q", body.SessionToken)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"id":      "ext-42",
			"email":   "bob@example.com",
			"name":    "Bob",
			"picture": "https://cdn.example.com/b.png",
		})
	}))
	defer srv.Close()

	p := NewProvider(srv.URL)
	id, err := p.Verify(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.ExternalID != "ext-42" || id.Email != "bob@example.com" || id.Name != "Bob" {
		t.Errorf("unexpected identity: %+v", id)
	}
}

func TestVerifyRejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewProvider(srv.URL)
	_, err := p.Verify(context.Background(), "bad-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProvider(srv.URL)
	_, err := p.Verify(context.Background(), "tok")
	if !errors.Is(err, ErrUpstreamAuth) {
		t.Errorf("expected ErrUpstreamAuth, got %v", err)
	}
}

func TestVerifyUnreachableProvider(t *testing.T) {
	p := NewProvider("http://127.0.0.1:1") // nothing listens here
	_, err := p.Verify(context.Background(), "tok")
	if !errors.Is(err, ErrUpstreamAuth) {
		t.Errorf("expected ErrUpstreamAuth, got %v", err)
	}
}

func TestVerifyIncompleteIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"name": "No ID"})
	}))
	defer srv.Close()

	p := NewProvider(srv.URL)
	_, err := p.Verify(context.Background(), "tok")
	if !errors.Is(err, ErrUpstreamAuth) {
		t.Errorf("expected ErrUpstreamAuth for incomplete identity, got %v", err)
	}
}
