package models

import "time"

type Project struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	Slug        string `gorm:"size:255;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Members     []ProjectUser       `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Invitations []ProjectInvitation `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Columns     []Column            `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (Project) TableName() string {
	return "projects"
}
