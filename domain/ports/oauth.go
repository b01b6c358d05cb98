package ports

import (
	"context"

	"kanban-api/domain/dto"
)

// OAuthProvider ซ่อนรายละเอียดของ OAuth2 code exchange
type OAuthProvider interface {
	// AuthCodeURL สร้าง URL สำหรับ redirect ไปหน้า consent
	AuthCodeURL(state string) string

	// Exchange แลก code เป็น token แล้วดึงข้อมูลผู้ใช้
	Exchange(ctx context.Context, code string) (*dto.GoogleUserInfo, error)

	Enabled() bool
}
