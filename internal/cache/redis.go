// Package cache provides the Redis-backed key/value store used for token revocation
// and read-through caching, plus an in-memory fallback when Redis is not configured.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-marketplace/utils"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Store.Get when the key is absent or expired
var ErrMiss = errors.New("cache miss")

// Store is the minimal key/value contract shared by Redis and the in-memory fallback
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// NewRedisClient connects to addr, which may be a redis:// URL or host:port, and pings it
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	utils.Info("redis connected", map[string]any{"addr": opts.Addr})
	return client, nil
}

// RedisStore implements Store on a go-redis client
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a connected client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
