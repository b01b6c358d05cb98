package services

import (
	"context"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/pkg/utils"
)

type SubtaskService interface {
	ListSubtasks(ctx context.Context, taskID uint) ([]*models.Subtask, error)
	GetSubtask(ctx context.Context, id uint) (*models.Subtask, error)
	AddSubtask(ctx context.Context, req *dto.CreateSubtaskRequest) (*models.Subtask, error)
	// UpdateSubtask ใช้ชื่อของ actor เป็น completedBy เมื่อ isCompleted เปลี่ยนเป็น true
	UpdateSubtask(ctx context.Context, actor *utils.UserContext, id uint, req *dto.UpdateSubtaskRequest) (*models.Subtask, error)
	ToggleSubtask(ctx context.Context, actor *utils.UserContext, id uint) (*models.Subtask, error)
	DeleteSubtask(ctx context.Context, id uint) error
}
