package models

import "time"

type TaskAssignee struct {
	TaskID     uint `gorm:"primaryKey;autoIncrement:false"`
	UserID     uint `gorm:"primaryKey;autoIncrement:false;index"`
	AssignedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (TaskAssignee) TableName() string {
	return "task_assignees"
}
