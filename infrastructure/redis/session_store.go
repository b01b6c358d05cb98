package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"kanban-api/domain/ports"
)

const (
	oauthStateKind = "oauth_state:"
	revokedKind    = "revoked:"
)

// SessionStore เก็บ OAuth state และ JWT ที่ logout แล้วไว้ใน Redis
type SessionStore struct {
	client *Client
}

func NewSessionStore(client *Client) ports.SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) SaveOAuthState(ctx context.Context, state string, ttl time.Duration) error {
	return s.client.SetFlag(ctx, oauthStateKind, state, ttl)
}

func (s *SessionStore) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}
	return s.client.TakeFlag(ctx, oauthStateKind, state)
}

// RevokeToken จำ token ไว้จนถึงเวลาหมดอายุของมันเท่านั้น
func (s *SessionStore) RevokeToken(ctx context.Context, token string, until time.Time) error {
	return s.client.SetFlag(ctx, revokedKind, tokenKey(token), time.Until(until))
}

func (s *SessionStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.client.HasFlag(ctx, revokedKind, tokenKey(token))
}

// tokenKey เก็บ hash แทน JWT ตัวเต็ม
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
