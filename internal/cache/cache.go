// Package cache provides the Redis-backed stores for revoked tokens and
// short-lived security artifacts (verification codes, reset tokens).
//
// The blacklist and the security store live in separate logical Redis
// databases so that flushing one never touches the other.
package cache

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/Kentemie/Fast-and-Furious/config"
)

// ErrNotFound is returned when a key does not exist or has expired.
var ErrNotFound = errors.New("cache: key not found")

func newClient(cfg config.Redis, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.Addr(),
		DB:   db,
	})
}
