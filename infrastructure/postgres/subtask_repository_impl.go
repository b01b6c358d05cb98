package postgres

import (
	"context"

	"gorm.io/gorm"

	"kanban-api/domain/models"
	"kanban-api/domain/repositories"
)

type SubtaskRepositoryImpl struct {
	db *gorm.DB
}

func NewSubtaskRepository(db *gorm.DB) repositories.SubtaskRepository {
	return &SubtaskRepositoryImpl{db: db}
}

func (r *SubtaskRepositoryImpl) Create(ctx context.Context, subtask *models.Subtask) error {
	return conn(ctx, r.db).Create(subtask).Error
}

func (r *SubtaskRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.Subtask, error) {
	var subtask models.Subtask
	err := conn(ctx, r.db).Where("id = ?", id).First(&subtask).Error
	if err != nil {
		return nil, err
	}
	return &subtask, nil
}

func (r *SubtaskRepositoryImpl) ListByTask(ctx context.Context, taskID uint) ([]*models.Subtask, error) {
	var subtasks []*models.Subtask
	err := conn(ctx, r.db).Where("task_id = ?", taskID).Order("id").Find(&subtasks).Error
	return subtasks, err
}

func (r *SubtaskRepositoryImpl) Update(ctx context.Context, subtask *models.Subtask) error {
	return conn(ctx, r.db).Save(subtask).Error
}

func (r *SubtaskRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&models.Subtask{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SubtaskRepositoryImpl) GetProjectID(ctx context.Context, subtaskID uint) (uint, error) {
	var ids []uint
	err := conn(ctx, r.db).Model(&models.Subtask{}).
		Joins("JOIN tasks ON tasks.id = subtasks.task_id").
		Joins("JOIN board_columns ON board_columns.id = tasks.column_id").
		Where("subtasks.id = ?", subtaskID).
		Pluck("board_columns.project_id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return ids[0], nil
}
