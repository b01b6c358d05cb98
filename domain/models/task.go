package models

import (
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority ค่าว่างได้ Medium
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityMedium, true
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	}
	return "", false
}

type Task struct {
	ID          uint   `gorm:"primaryKey"`
	ColumnID    uint   `gorm:"not null;index"`
	OwnerID     uint   `gorm:"not null;index"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	DueDate     *time.Time
	Priority    Priority `gorm:"size:10;not null;default:'Medium'"`
	Position    int      `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Assignees   []TaskAssignee `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Subtasks    []Subtask      `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Attachments []Attachment   `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

func (Task) TableName() string {
	return "tasks"
}
