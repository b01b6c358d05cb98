package repositories

import (
	"context"

	"kanban-api/domain/models"
)

type TaskRepository interface {
	// Create ต่อท้าย task ใน column
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	// GetWithDetails โหลด assignees, subtasks และ attachments
	GetWithDetails(ctx context.Context, id uint) (*models.Task, error)
	ListByColumn(ctx context.Context, columnID uint) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	// Move ย้าย task ไป column/position ใหม่ และเรียง position ทั้งต้นทางและปลายทางใหม่
	Move(ctx context.Context, task *models.Task, columnID uint, position int) error
	// Delete ลบ task พร้อม assignees, subtasks, attachments แล้วเรียง position ใหม่
	Delete(ctx context.Context, id uint) error
	GetProjectID(ctx context.Context, taskID uint) (uint, error)
}
