package models

import (
	"strings"
	"time"
)

type User struct {
	ID                        uint    `gorm:"primaryKey"`
	Name                      string  `gorm:"size:100;not null"`
	Surname                   string  `gorm:"size:100;not null"`
	Email                     string  `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash              string  `gorm:"size:255"` // ว่างสำหรับ user ที่สมัครผ่าน Google
	IsSuperAdmin              bool    `gorm:"default:false"`
	EmailVerified             bool    `gorm:"default:false"`
	VerificationToken         *string `gorm:"size:128;index"`
	VerificationTokenExpires  *time.Time
	PasswordResetToken        *string `gorm:"size:128;index"`
	PasswordResetTokenExpires *time.Time
	GoogleID                  *string `gorm:"size:255;index"`
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

func (User) TableName() string {
	return "users"
}

// IsGoogleUser ตรวจสอบว่าเป็น user ที่ login ด้วย Google
func (u *User) IsGoogleUser() bool {
	return u.GoogleID != nil && *u.GoogleID != ""
}

// DisplayName ชื่อที่ใช้แสดงในอีเมลและ subtask
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.Name + " " + u.Surname)
}
