package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	blacklist := NewMemoryTokenBlacklist()

	found, err := blacklist.Contains(ctx, "token")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, blacklist.Add(ctx, "token", 1, time.Minute))
	found, err = blacklist.Contains(ctx, "token")
	require.NoError(t, err)
	assert.True(t, found)

	// Expired tokens need no blacklisting
	require.NoError(t, blacklist.Add(ctx, "expired", 1, -time.Second))
	found, err = blacklist.Contains(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemorySecurityStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySecurityStore()

	require.NoError(t, store.PutVerificationCode(ctx, "123456", 7, time.Minute))

	userID, err := store.ConsumeVerificationCode(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	// Consumed entries are gone
	_, err = store.ConsumeVerificationCode(ctx, "123456")
	assert.ErrorIs(t, err, ErrNotFound)

	// Codes and reset tokens live in separate namespaces
	require.NoError(t, store.PutVerificationCode(ctx, "shared", 1, time.Minute))
	require.NoError(t, store.PutResetToken(ctx, "shared", 2, time.Minute))

	fromCodes, err := store.ConsumeVerificationCode(ctx, "shared")
	require.NoError(t, err)
	fromTokens, err := store.ConsumeResetToken(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, uint(1), fromCodes)
	assert.Equal(t, uint(2), fromTokens)
}

func TestMemorySecurityStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySecurityStore()

	require.NoError(t, store.PutResetToken(ctx, "token", 1, -time.Second))
	_, err := store.ConsumeResetToken(ctx, "token")
	assert.ErrorIs(t, err, ErrNotFound)
}
