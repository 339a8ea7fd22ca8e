package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kentemie/Fast-and-Furious/config"
)

// blacklistKeyPrefix namespaces revoked tokens inside the blacklist database.
const blacklistKeyPrefix = "user"

// TokenBlacklist tracks revoked access tokens in Redis. A token is
// blacklisted for its remaining lifetime; once it would have expired anyway
// the entry lapses with it.
type TokenBlacklist struct {
	rdb       *redis.Client
	keyPrefix string
}

// NewTokenBlacklist creates a blacklist in the configured blacklist database.
func NewTokenBlacklist(cfg config.Redis) *TokenBlacklist {
	return &TokenBlacklist{
		rdb:       newClient(cfg, cfg.BlacklistDB),
		keyPrefix: blacklistKeyPrefix,
	}
}

func (b *TokenBlacklist) makeKey(token string) string {
	return fmt.Sprintf("%s:%s", b.keyPrefix, token)
}

// Add blacklists a token for the given duration.
func (b *TokenBlacklist) Add(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to revoke.
		return nil
	}
	return b.rdb.Set(ctx, b.makeKey(token), userID, ttl).Err()
}

// Contains reports whether a token is blacklisted.
func (b *TokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.rdb.Exists(ctx, b.makeKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return n > 0, nil
}

// Clear removes every blacklisted token.
func (b *TokenBlacklist) Clear(ctx context.Context) error {
	return b.rdb.FlushDB(ctx).Err()
}

// Close releases the underlying Redis connection.
func (b *TokenBlacklist) Close() error {
	return b.rdb.Close()
}
