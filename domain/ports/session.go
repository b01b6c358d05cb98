package ports

import (
	"context"
	"time"
)

// SessionStore เก็บ OAuth state และ token ที่ถูก logout แล้ว
type SessionStore interface {
	SaveOAuthState(ctx context.Context, state string, ttl time.Duration) error

	// ConsumeOAuthState คืน true ถ้า state ถูกต้อง และลบทิ้งทันที (ใช้ได้ครั้งเดียว)
	ConsumeOAuthState(ctx context.Context, state string) (bool, error)

	RevokeToken(ctx context.Context, token string, until time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
