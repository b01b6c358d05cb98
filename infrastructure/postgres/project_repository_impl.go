package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kanban-api/domain/models"
	"kanban-api/domain/repositories"
)

type ProjectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) repositories.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func withMembers(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("project_users.id") }).
		Preload("Members.User")
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *models.Project) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(project).Error
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := withMembers(conn(ctx, r.db)).Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, project *models.Project) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(project).Error
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return runInTx(ctx, r.db, func(ctx context.Context) error {
		db := conn(ctx, r.db)

		var columnIDs []uint
		if err := db.Model(&models.Column{}).Where("project_id = ?", id).Pluck("id", &columnIDs).Error; err != nil {
			return err
		}
		if err := deleteColumns(db, columnIDs); err != nil {
			return err
		}
		if err := db.Where("project_id = ?", id).Delete(&models.ProjectInvitation{}).Error; err != nil {
			return err
		}
		if err := db.Where("project_id = ?", id).Delete(&models.ProjectUser{}).Error; err != nil {
			return err
		}

		result := db.Where("id = ?", id).Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ProjectRepositoryImpl) List(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := withMembers(conn(ctx, r.db)).Order("id").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]*models.Project, error) {
	var projects []*models.Project
	err := withMembers(conn(ctx, r.db)).
		Where("id IN (?)", conn(ctx, r.db).Model(&models.ProjectUser{}).Select("project_id").Where("user_id = ?", userID)).
		Order("id").
		Find(&projects).Error
	return projects, err
}
