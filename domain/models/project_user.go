package models

import (
	"strings"
	"time"
)

// Role ของสมาชิกในโปรเจกต์ เก็บแบบ canonical (Admin / Member)
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleMember Role = "Member"
)

// ParseRole รับค่าแบบไม่สนตัวพิมพ์เล็กใหญ่
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "member":
		return RoleMember, true
	}
	return "", false
}

type ProjectUser struct {
	ID        uint `gorm:"primaryKey"`
	ProjectID uint `gorm:"not null;uniqueIndex:idx_project_user"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_project_user;index"`
	Role      Role `gorm:"size:20;not null"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (ProjectUser) TableName() string {
	return "project_users"
}
