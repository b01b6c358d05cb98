package services

import (
	"context"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
)

type ColumnService interface {
	AddColumn(ctx context.Context, projectID uint, req *dto.CreateColumnRequest) (*models.Column, error)
	ListColumns(ctx context.Context, projectID uint) ([]*models.Column, error)
	GetColumn(ctx context.Context, projectID, columnID uint) (*models.Column, error)
	UpdateColumn(ctx context.Context, columnID uint, req *dto.UpdateColumnRequest) (*models.Column, error)
	DeleteColumn(ctx context.Context, columnID uint) error
}
