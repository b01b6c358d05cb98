package repositories

import (
	"context"

	"kanban-api/domain/models"
)

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	GetByID(ctx context.Context, id uint) (*models.Attachment, error)
	ListByTask(ctx context.Context, taskID uint) ([]*models.Attachment, error)
	Delete(ctx context.Context, id uint) error
	GetProjectID(ctx context.Context, attachmentID uint) (uint, error)

	// path ของไฟล์ที่ต้องลบตามเมื่อลบ entity แม่
	ListPathsByTask(ctx context.Context, taskID uint) ([]string, error)
	ListPathsByColumn(ctx context.Context, columnID uint) ([]string, error)
	ListPathsByProject(ctx context.Context, projectID uint) ([]string, error)
}
