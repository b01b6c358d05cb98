package services

import (
	"context"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
)

type TaskService interface {
	CreateTask(ctx context.Context, ownerID uint, req *dto.CreateTaskRequest) (*models.Task, error)
	GetTask(ctx context.Context, columnID, taskID uint) (*models.Task, error)
	ListTasks(ctx context.Context, columnID uint) ([]*models.Task, error)
	UpdateTask(ctx context.Context, taskID uint, req *dto.UpdateTaskRequest) (*models.Task, error)
	MoveTask(ctx context.Context, taskID uint, req *dto.MoveTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID uint) error

	// UpdateAssignees ตั้งผู้รับผิดชอบให้ตรงกับ userIds (idempotent)
	UpdateAssignees(ctx context.Context, req *dto.UpdateAssigneesRequest) (*dto.UpdateAssigneesResponse, error)
	ListAssignees(ctx context.Context, taskID uint) ([]*models.TaskAssignee, error)
}
