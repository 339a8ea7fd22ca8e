package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kentemie/Fast-and-Furious/config"
)

// Key prefixes inside the security database.
const (
	verificationKeyPrefix = "verify"
	resetKeyPrefix        = "reset"
)

// SecurityStore keeps single-use security artifacts in Redis: e-mail
// verification codes and reset-password tokens, both mapping to the owning
// user id and expiring on their own.
type SecurityStore struct {
	rdb *redis.Client
}

// NewSecurityStore creates a store in the configured security database.
func NewSecurityStore(cfg config.Redis) *SecurityStore {
	return &SecurityStore{rdb: newClient(cfg, cfg.SecurityDB)}
}

// PutVerificationCode stores a verification code for the given user.
func (s *SecurityStore) PutVerificationCode(ctx context.Context, code string, userID uint, ttl time.Duration) error {
	return s.put(ctx, verificationKeyPrefix, code, userID, ttl)
}

// ConsumeVerificationCode resolves and deletes a verification code.
// Returns ErrNotFound for unknown or expired codes.
func (s *SecurityStore) ConsumeVerificationCode(ctx context.Context, code string) (uint, error) {
	return s.consume(ctx, verificationKeyPrefix, code)
}

// PutResetToken stores a reset-password token for the given user.
func (s *SecurityStore) PutResetToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	return s.put(ctx, resetKeyPrefix, token, userID, ttl)
}

// ConsumeResetToken resolves and deletes a reset-password token.
// Returns ErrNotFound for unknown or expired tokens.
func (s *SecurityStore) ConsumeResetToken(ctx context.Context, token string) (uint, error) {
	return s.consume(ctx, resetKeyPrefix, token)
}

// Close releases the underlying Redis connection.
func (s *SecurityStore) Close() error {
	return s.rdb.Close()
}

func (s *SecurityStore) put(ctx context.Context, prefix, key string, userID uint, ttl time.Duration) error {
	return s.rdb.Set(ctx, makeKey(prefix, key), userID, ttl).Err()
}

func (s *SecurityStore) consume(ctx context.Context, prefix, key string) (uint, error) {
	value, err := s.rdb.GetDel(ctx, makeKey(prefix, key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to consume %s key: %w", prefix, err)
	}

	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed %s entry: %w", prefix, err)
	}
	return uint(userID), nil
}

func makeKey(prefix, key string) string {
	return fmt.Sprintf("%s:%s", prefix, key)
}
