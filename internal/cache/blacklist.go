package cache

import (
	"context"
	"errors"
	"time"
)

// TokenBlacklist remembers revoked token ids until the token would have expired anyway
type TokenBlacklist struct {
	store Store
	now   func() time.Time
}

// NewTokenBlacklist builds a blacklist on top of any Store
func NewTokenBlacklist(store Store) *TokenBlacklist {
	return &TokenBlacklist{store: store, now: time.Now}
}

// Revoke marks tokenID revoked until expiresAt; already expired tokens are ignored
func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(b.now())
	if ttl <= 0 {
		return nil
	}
	return b.store.Set(ctx, RevokedTokenKey(tokenID), []byte("1"), ttl)
}

// IsRevoked reports whether tokenID was revoked
func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, err := b.store.Get(ctx, RevokedTokenKey(tokenID))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrMiss):
		return false, nil
	default:
		return false, err
	}
}
