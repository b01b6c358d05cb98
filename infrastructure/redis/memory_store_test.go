package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOAuthStateIsSingleUse(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, store.SaveOAuthState(ctx, "state-1", time.Minute))

	ok, err := store.ConsumeOAuthState(ctx, "state-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.ConsumeOAuthState(ctx, "state-1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.ConsumeOAuthState(ctx, "never-saved")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOAuthStateExpires(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.SaveOAuthState(ctx, "state-1", time.Minute))
	store.now = func() time.Time { return now.Add(2 * time.Minute) }

	ok, err := store.ConsumeOAuthState(ctx, "state-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRevokedTokens(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.RevokeToken(ctx, "jwt-a", now.Add(time.Hour)))

	revoked, err := store.IsRevoked(ctx, "jwt-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "jwt-b")
	require.NoError(t, err)
	assert.False(t, revoked)

	// token หมดอายุแล้วไม่ต้องจำว่าถูก revoke
	store.now = func() time.Time { return now.Add(2 * time.Hour) }
	revoked, err = store.IsRevoked(ctx, "jwt-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.RevokeToken(ctx, "jwt-c", now.Add(3*time.Hour)))
	assert.Len(t, store.revoked, 1)
}
