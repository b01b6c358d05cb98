package repositories

import (
	"context"

	"kanban-api/domain/models"
)

type SubtaskRepository interface {
	Create(ctx context.Context, subtask *models.Subtask) error
	GetByID(ctx context.Context, id uint) (*models.Subtask, error)
	ListByTask(ctx context.Context, taskID uint) ([]*models.Subtask, error)
	Update(ctx context.Context, subtask *models.Subtask) error
	Delete(ctx context.Context, id uint) error
	GetProjectID(ctx context.Context, subtaskID uint) (uint, error)
}
