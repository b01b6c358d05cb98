package models

import "time"

type ProjectInvitation struct {
	ID          uint   `gorm:"primaryKey"`
	Email       string `gorm:"size:255;not null;index"`
	ProjectID   uint   `gorm:"not null;index"`
	Role        Role   `gorm:"size:20;not null"`
	Token       string `gorm:"size:64;not null;index"`
	ExpiresAt   time.Time
	InvitedByID *uint
	CreatedAt   time.Time
}

func (ProjectInvitation) TableName() string {
	return "project_invitations"
}

// IsExpired ตรวจว่าคำเชิญหมดอายุ ณ เวลา now
func (i *ProjectInvitation) IsExpired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
