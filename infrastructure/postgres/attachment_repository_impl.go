package postgres

import (
	"context"

	"gorm.io/gorm"

	"kanban-api/domain/models"
	"kanban-api/domain/repositories"
)

type AttachmentRepositoryImpl struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) repositories.AttachmentRepository {
	return &AttachmentRepositoryImpl{db: db}
}

func (r *AttachmentRepositoryImpl) Create(ctx context.Context, attachment *models.Attachment) error {
	return conn(ctx, r.db).Create(attachment).Error
}

func (r *AttachmentRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.Attachment, error) {
	var attachment models.Attachment
	err := conn(ctx, r.db).Where("id = ?", id).First(&attachment).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *AttachmentRepositoryImpl) ListByTask(ctx context.Context, taskID uint) ([]*models.Attachment, error) {
	var attachments []*models.Attachment
	err := conn(ctx, r.db).Where("task_id = ?", taskID).Order("id").Find(&attachments).Error
	return attachments, err
}

func (r *AttachmentRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&models.Attachment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AttachmentRepositoryImpl) GetProjectID(ctx context.Context, attachmentID uint) (uint, error) {
	var ids []uint
	err := conn(ctx, r.db).Model(&models.Attachment{}).
		Joins("JOIN tasks ON tasks.id = attachments.task_id").
		Joins("JOIN board_columns ON board_columns.id = tasks.column_id").
		Where("attachments.id = ?", attachmentID).
		Pluck("board_columns.project_id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return ids[0], nil
}

func (r *AttachmentRepositoryImpl) ListPathsByTask(ctx context.Context, taskID uint) ([]string, error) {
	var paths []string
	err := conn(ctx, r.db).Model(&models.Attachment{}).Where("task_id = ?", taskID).Pluck("file_path", &paths).Error
	return paths, err
}

func (r *AttachmentRepositoryImpl) ListPathsByColumn(ctx context.Context, columnID uint) ([]string, error) {
	var paths []string
	err := conn(ctx, r.db).Model(&models.Attachment{}).
		Joins("JOIN tasks ON tasks.id = attachments.task_id").
		Where("tasks.column_id = ?", columnID).
		Pluck("attachments.file_path", &paths).Error
	return paths, err
}

func (r *AttachmentRepositoryImpl) ListPathsByProject(ctx context.Context, projectID uint) ([]string, error) {
	var paths []string
	err := conn(ctx, r.db).Model(&models.Attachment{}).
		Joins("JOIN tasks ON tasks.id = attachments.task_id").
		Joins("JOIN board_columns ON board_columns.id = tasks.column_id").
		Where("board_columns.project_id = ?", projectID).
		Pluck("attachments.file_path", &paths).Error
	return paths, err
}
