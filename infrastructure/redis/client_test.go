package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeysAreNamespaced(t *testing.T) {
	c := &Client{prefix: "kanban:"}

	assert.Equal(t, "kanban:oauth_state:abc", c.key(oauthStateKind, "abc"))
	assert.Equal(t, "kanban:revoked:"+tokenKey("jwt"), c.key(revokedKind, tokenKey("jwt")))
	assert.Len(t, tokenKey("jwt"), 64)
}

func TestExpiredTokenIsNotStored(t *testing.T) {
	// rdb เป็น nil ถ้ามีการเรียก Redis จริงจะ panic
	store := NewSessionStore(&Client{prefix: "kanban:"})

	err := store.RevokeToken(context.Background(), "jwt", time.Now().Add(-time.Minute))
	assert.NoError(t, err)
}
