package cache

import (
	"context"
	"sync"
	"time"
)

// In-memory implementations of the blacklist and security store, used by
// tests that need the full service or handler stack without a Redis server.

// MemoryTokenBlacklist is a map-backed TokenBlacklist equivalent.
type MemoryTokenBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewMemoryTokenBlacklist creates an empty in-memory blacklist.
func NewMemoryTokenBlacklist() *MemoryTokenBlacklist {
	return &MemoryTokenBlacklist{entries: make(map[string]time.Time)}
}

// Add blacklists a token for the given duration.
func (b *MemoryTokenBlacklist) Add(_ context.Context, token string, _ uint, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[token] = time.Now().Add(ttl)
	return nil
}

// Contains reports whether a token is blacklisted.
func (b *MemoryTokenBlacklist) Contains(_ context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	deadline, ok := b.entries[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(b.entries, token)
		return false, nil
	}
	return true, nil
}

type memoryEntry struct {
	userID    uint
	expiresAt time.Time
}

// MemorySecurityStore is a map-backed SecurityStore equivalent.
type MemorySecurityStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemorySecurityStore creates an empty in-memory security store.
func NewMemorySecurityStore() *MemorySecurityStore {
	return &MemorySecurityStore{entries: make(map[string]memoryEntry)}
}

// PutVerificationCode stores a verification code for the given user.
func (s *MemorySecurityStore) PutVerificationCode(_ context.Context, code string, userID uint, ttl time.Duration) error {
	s.put(makeKey(verificationKeyPrefix, code), userID, ttl)
	return nil
}

// ConsumeVerificationCode resolves and deletes a verification code.
func (s *MemorySecurityStore) ConsumeVerificationCode(_ context.Context, code string) (uint, error) {
	return s.consume(makeKey(verificationKeyPrefix, code))
}

// PutResetToken stores a reset-password token for the given user.
func (s *MemorySecurityStore) PutResetToken(_ context.Context, token string, userID uint, ttl time.Duration) error {
	s.put(makeKey(resetKeyPrefix, token), userID, ttl)
	return nil
}

// ConsumeResetToken resolves and deletes a reset-password token.
func (s *MemorySecurityStore) ConsumeResetToken(_ context.Context, token string) (uint, error) {
	return s.consume(makeKey(resetKeyPrefix, token))
}

func (s *MemorySecurityStore) put(key string, userID uint, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
}

func (s *MemorySecurityStore) consume(key string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return 0, ErrNotFound
	}
	delete(s.entries, key)
	if time.Now().After(entry.expiresAt) {
		return 0, ErrNotFound
	}
	return entry.userID, nil
}
