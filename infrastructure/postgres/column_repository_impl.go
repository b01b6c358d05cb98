package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kanban-api/domain/models"
	"kanban-api/domain/repositories"
)

type ColumnRepositoryImpl struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) repositories.ColumnRepository {
	return &ColumnRepositoryImpl{db: db}
}

// withTaskDetails โหลด tasks ของ column พร้อมข้อมูลลูกเรียงตามลำดับ
func withTaskDetails(db *gorm.DB, prefix string) *gorm.DB {
	return db.
		Preload(prefix+"Assignees", func(db *gorm.DB) *gorm.DB { return db.Order("assigned_at, user_id") }).
		Preload(prefix + "Assignees.User").
		Preload(prefix+"Subtasks", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload(prefix+"Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

func withTasks(db *gorm.DB) *gorm.DB {
	db = db.Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("position, id") })
	return withTaskDetails(db, "Tasks.")
}

func (r *ColumnRepositoryImpl) Create(ctx context.Context, column *models.Column) error {
	return runInTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		var count int64
		if err := db.Model(&models.Column{}).Where("project_id = ?", column.ProjectID).Count(&count).Error; err != nil {
			return err
		}
		column.Position = int(count)
		return db.Omit(clause.Associations).Create(column).Error
	})
}

func (r *ColumnRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.Column, error) {
	var column models.Column
	err := conn(ctx, r.db).Where("id = ?", id).First(&column).Error
	if err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepositoryImpl) GetWithTasks(ctx context.Context, projectID, id uint) (*models.Column, error) {
	var column models.Column
	err := withTasks(conn(ctx, r.db)).Where("id = ? AND project_id = ?", id, projectID).First(&column).Error
	if err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepositoryImpl) ListByProject(ctx context.Context, projectID uint) ([]*models.Column, error) {
	var columns []*models.Column
	err := withTasks(conn(ctx, r.db)).Where("project_id = ?", projectID).Order("position, id").Find(&columns).Error
	return columns, err
}

func (r *ColumnRepositoryImpl) Update(ctx context.Context, column *models.Column) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(column).Error
}

func (r *ColumnRepositoryImpl) Reorder(ctx context.Context, column *models.Column, position int) error {
	return runInTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		var ids []uint
		err := db.Model(&models.Column{}).
			Where("project_id = ? AND id <> ?", column.ProjectID, column.ID).
			Order("position, id").
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		ids, column.Position = insertAt(ids, column.ID, position)
		return reindex(db, &models.Column{}, ids)
	})
}

func (r *ColumnRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return runInTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)

		var column models.Column
		if err := db.Where("id = ?", id).First(&column).Error; err != nil {
			return err
		}
		if err := deleteColumns(db, []uint{id}); err != nil {
			return err
		}

		var ids []uint
		err := db.Model(&models.Column{}).Where("project_id = ?", column.ProjectID).Order("position, id").Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		return reindex(db, &models.Column{}, ids)
	})
}
