// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// lookup.go provides a Valkey-backed cache for spam-check results.
// Incoming-call checks are the hottest read path and hit the same few
// numbers repeatedly, so positive and negative verdicts are both cached
// for a short TTL and invalidated whenever the registry changes.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"callguard/internal/models"
)

const (
	// lookupKeyPrefix is the Valkey key prefix for cached check results.
	lookupKeyPrefix = "check:"

	// DefaultLookupTTL is how long a check verdict stays cached.
	DefaultLookupTTL = 5 * time.Minute
)

// LookupCache caches spam-check verdicts in Valkey.
type LookupCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLookupCache creates a lookup cache backed by the given Valkey client.
func NewLookupCache(client *redis.Client, ttl time.Duration) *LookupCache {
	if ttl == 0 {
		ttl = DefaultLookupTTL
	}
	return &LookupCache{client: client, ttl: ttl}
}

// Get retrieves a cached verdict for a phone number. Returns false on miss.
func (lc *LookupCache) Get(ctx context.Context, phoneNumber string) (*models.CheckResult, bool) {
	val, err := lc.client.Get(ctx, lookupKeyPrefix+phoneNumber).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("lookup cache get error", "number", phoneNumber, "error", err)
		return nil, false
	}

	var res models.CheckResult
	if err := json.Unmarshal(val, &res); err != nil {
		slog.Warn("lookup cache decode error", "number", phoneNumber, "error", err)
		return nil, false
	}
	slog.Debug("lookup cache hit", "number", phoneNumber)
	return &res, true
}

// Set stores a verdict for a phone number with the configured TTL.
func (lc *LookupCache) Set(ctx context.Context, phoneNumber string, res *models.CheckResult) {
	payload, err := json.Marshal(res)
	if err != nil {
		slog.Warn("lookup cache encode error", "number", phoneNumber, "error", err)
		return
	}
	if err := lc.client.Set(ctx, lookupKeyPrefix+phoneNumber, payload, lc.ttl).Err(); err != nil {
		slog.Warn("lookup cache set error", "number", phoneNumber, "error", err)
	}
}

// Invalidate removes the cached verdict for one number. Called when that
// number is reported or removed.
func (lc *LookupCache) Invalidate(ctx context.Context, phoneNumber string) {
	if err := lc.client.Del(ctx, lookupKeyPrefix+phoneNumber).Err(); err != nil {
		slog.Warn("lookup cache invalidate error", "number", phoneNumber, "error", err)
	}
}

// InvalidateAll removes every cached verdict by scanning for the prefix.
// Used after bulk imports, since any number could be affected.
func (lc *LookupCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := lc.client.Scan(ctx, cursor, lookupKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("lookup cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := lc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("lookup cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("lookup cache fully cleared", "deleted", deleted)
	}
}
