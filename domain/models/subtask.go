package models

import "time"

type Subtask struct {
	ID          uint    `gorm:"primaryKey"`
	TaskID      uint    `gorm:"not null;index"`
	Title       string  `gorm:"size:200;not null"`
	IsCompleted bool    `gorm:"not null;default:false"`
	CompletedBy *string `gorm:"size:200"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Subtask) TableName() string {
	return "subtasks"
}
