package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kanban-api/domain/models"
	"kanban-api/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return runInTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		var count int64
		if err := db.Model(&models.Task{}).Where("column_id = ?", task.ColumnID).Count(&count).Error; err != nil {
			return err
		}
		task.Position = int(count)
		return db.Omit(clause.Associations).Create(task).Error
	})
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := conn(ctx, r.db).Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) GetWithDetails(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := withTaskDetails(conn(ctx, r.db), "").Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) ListByColumn(ctx context.Context, columnID uint) ([]*models.Task, error) {
	var tasks []*models.Task
	err := withTaskDetails(conn(ctx, r.db), "").Where("column_id = ?", columnID).Order("position, id").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(task).Error
}

func (r *TaskRepositoryImpl) Move(ctx context.Context, task *models.Task, columnID uint, position int) error {
	return runInTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		sourceID := task.ColumnID

		var ids []uint
		err := db.Model(&models.Task{}).
			Where("column_id = ? AND id <> ?", columnID, task.ID).
			Order("position, id").
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}

		if err := db.Model(&models.Task{}).Where("id = ?", task.ID).Update("column_id", columnID).Error; err != nil {
			return err
		}
		ids, task.Position = insertAt(ids, task.ID, position)
		task.ColumnID = columnID
		if err := reindex(db, &models.Task{}, ids); err != nil {
			return err
		}

		if sourceID == columnID {
			return nil
		}
		return r.reindexColumn(db, sourceID)
	})
}

func (r *TaskRepositoryImpl) reindexColumn(db *gorm.DB, columnID uint) error {
	var ids []uint
	if err := db.Model(&models.Task{}).Where("column_id = ?", columnID).Order("position, id").Pluck("id", &ids).Error; err != nil {
		return err
	}
	return reindex(db, &models.Task{}, ids)
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return runInTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)

		var task models.Task
		if err := db.Where("id = ?", id).First(&task).Error; err != nil {
			return err
		}
		if err := deleteTasks(db, []uint{id}); err != nil {
			return err
		}
		return r.reindexColumn(db, task.ColumnID)
	})
}

func (r *TaskRepositoryImpl) GetProjectID(ctx context.Context, taskID uint) (uint, error) {
	var ids []uint
	err := conn(ctx, r.db).Model(&models.Task{}).
		Joins("JOIN board_columns ON board_columns.id = tasks.column_id").
		Where("tasks.id = ?", taskID).
		Pluck("board_columns.project_id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return ids[0], nil
}
