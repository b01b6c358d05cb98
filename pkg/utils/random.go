package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateSecureToken คืน n random bytes ในรูป base64 URL encoding (ไม่มี padding)
// ใช้สำหรับ token ยืนยันอีเมลและ reset password
func GenerateSecureToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
