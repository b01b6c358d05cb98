package dto

import "time"

type CreateSubtaskRequest struct {
	TaskID uint   `json:"taskId" validate:"required,gt=0"`
	Title  string `json:"title" validate:"required,min=1,max=200"`
}

// UpdateSubtaskRequest ไม่มี completedBy เพราะ server กำหนดจาก session เอง
type UpdateSubtaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	IsCompleted *bool   `json:"isCompleted"`
}

type SubtaskResponse struct {
	ID          uint       `json:"id"`
	TaskID      uint       `json:"taskId"`
	Title       string     `json:"title"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedBy *string    `json:"completedBy"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}
