// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth exchanges identity-provider session tokens for verified
// user identities. The provider is an external service (POST /auth/verify);
// this package only handles the HTTP exchange and response parsing.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUpstreamAuth means the identity provider rejected the exchange or
// could not be reached. Handlers map it to 502.
var ErrUpstreamAuth = errors.New("identity provider unavailable")

// ErrInvalidToken means the provider answered but the token is unknown
// or expired.
var ErrInvalidToken = errors.New("invalid session token")

// Identity is the verified profile returned by the identity provider.
type Identity struct {
	ExternalID string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Picture    string `json:"picture"`
}

// Provider verifies session tokens against the external identity service.
type Provider struct {
	baseURL string
	client  *http.Client
}

// NewProvider creates a provider client for the given base URL.
func NewProvider(baseURL string) *Provider {
	return &Provider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type verifyRequest struct {
	SessionToken string `json:"session_token"`
}

// Verify exchanges a session token for the caller's identity. Returns
// ErrInvalidToken for rejected tokens and ErrUpstreamAuth when the
// provider is unreachable or misbehaving.
func (p *Provider) Verify(ctx context.Context, token string) (*Identity, error) {
	payload, err := json.Marshal(verifyRequest{SessionToken: token})
	if err != nil {
		return nil, fmt.Errorf("auth marshal: %w", err)
	}

	url := p.baseURL + "/auth/verify"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstreamAuth, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound:
		return nil, ErrInvalidToken
	default:
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstreamAuth, resp.StatusCode, string(body))
	}

	var id Identity
	if err := json.Unmarshal(body, &id); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrUpstreamAuth, err)
	}
	if id.ExternalID == "" || id.Email == "" {
		return nil, fmt.Errorf("%w: incomplete identity", ErrUpstreamAuth)
	}
	return &id, nil
}
