package repositories

import (
	"context"

	"kanban-api/domain/models"
)

type TaskAssigneeRepository interface {
	ListByTask(ctx context.Context, taskID uint) ([]*models.TaskAssignee, error)
	Add(ctx context.Context, taskID uint, userIDs []uint) error
	Remove(ctx context.Context, taskID uint, userIDs []uint) error
}
