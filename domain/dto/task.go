package dto

import "time"

type CreateTaskRequest struct {
	ColumnID    uint       `json:"columnId" validate:"required,gt=0"`
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"omitempty,max=4000"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority" validate:"omitempty,priority"`
}

// UpdateTaskRequest ฟิลด์ที่เป็น nil จะไม่ถูกแก้
type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=4000"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    *string    `json:"priority" validate:"omitempty,priority"`
	ColumnID    *uint      `json:"columnId" validate:"omitempty,gt=0"`
}

type MoveTaskRequest struct {
	ColumnID uint `json:"columnId" validate:"required,gt=0"`
	Position int  `json:"position" validate:"gte=0"`
}

type TaskResponse struct {
	ID          uint                 `json:"id"`
	ColumnID    uint                 `json:"columnId"`
	OwnerID     uint                 `json:"ownerId"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	DueDate     *time.Time           `json:"dueDate"`
	Priority    string               `json:"priority"`
	Position    int                  `json:"position"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Assignees   []AssigneeResponse   `json:"assignees"`
	Subtasks    []SubtaskResponse    `json:"subtasks"`
	Attachments []AttachmentResponse `json:"attachments"`
}
