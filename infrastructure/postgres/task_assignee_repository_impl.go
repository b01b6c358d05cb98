package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kanban-api/domain/models"
	"kanban-api/domain/repositories"
)

type TaskAssigneeRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskAssigneeRepository(db *gorm.DB) repositories.TaskAssigneeRepository {
	return &TaskAssigneeRepositoryImpl{db: db}
}

func (r *TaskAssigneeRepositoryImpl) ListByTask(ctx context.Context, taskID uint) ([]*models.TaskAssignee, error) {
	var assignees []*models.TaskAssignee
	err := conn(ctx, r.db).Preload("User").Where("task_id = ?", taskID).Order("assigned_at, user_id").Find(&assignees).Error
	return assignees, err
}

// Add ข้ามคู่ (task, user) ที่มีอยู่แล้ว
func (r *TaskAssigneeRepositoryImpl) Add(ctx context.Context, taskID uint, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]models.TaskAssignee, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, models.TaskAssignee{TaskID: taskID, UserID: id, AssignedAt: now})
	}
	return conn(ctx, r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (r *TaskAssigneeRepositoryImpl) Remove(ctx context.Context, taskID uint, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	return conn(ctx, r.db).Where("task_id = ? AND user_id IN ?", taskID, userIDs).Delete(&models.TaskAssignee{}).Error
}
