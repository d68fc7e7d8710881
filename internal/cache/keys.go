package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"auction-marketplace/internal/metrics"
	"auction-marketplace/utils"
)

const (
	CategoriesKey      = "auctions:categories"
	RevokedTokenPrefix = "auth:revoked:%s"
	CategoriesTTL      = 10 * time.Minute
)

// RevokedTokenKey is the key marking a JWT id as logged out
func RevokedTokenKey(tokenID string) string {
	return fmt.Sprintf(RevokedTokenPrefix, tokenID)
}

// Remember is a read-through helper: it returns the cached value for key or
// calls load and caches its result. Cache failures are logged and bypassed.
func Remember[T any](ctx context.Context, store Store, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if store != nil {
		raw, err := store.Get(ctx, key)
		switch {
		case err == nil:
			var cached T
			if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
				metrics.CacheLookups.WithLabelValues(key, "hit").Inc()
				return cached, nil
			}
			utils.Warn("cache: dropping undecodable entry", map[string]any{"key": key})
		case !errors.Is(err, ErrMiss):
			utils.Warn("cache: read failed, loading from source", map[string]any{"key": key, "error": err.Error()})
		}
		metrics.CacheLookups.WithLabelValues(key, "miss").Inc()
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if store != nil {
		raw, err := json.Marshal(value)
		if err == nil {
			err = store.Set(ctx, key, raw, ttl)
		}
		if err != nil {
			utils.Warn("cache: write failed", map[string]any{"key": key, "error": err.Error()})
		}
	}
	return value, nil
}

// Invalidate deletes keys, logging instead of failing
func Invalidate(ctx context.Context, store Store, keys ...string) {
	if store == nil {
		return
	}
	if err := store.Delete(ctx, keys...); err != nil {
		utils.Warn("cache: invalidate failed", map[string]any{"keys": keys, "error": err.Error()})
	}
}
