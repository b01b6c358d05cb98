package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kanban-api/domain/models"
	"kanban-api/domain/repositories"
)

type ProjectUserRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectUserRepository(db *gorm.DB) repositories.ProjectUserRepository {
	return &ProjectUserRepositoryImpl{db: db}
}

func (r *ProjectUserRepositoryImpl) Create(ctx context.Context, member *models.ProjectUser) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(member).Error
}

func (r *ProjectUserRepositoryImpl) Get(ctx context.Context, projectID, userID uint) (*models.ProjectUser, error) {
	var member models.ProjectUser
	err := conn(ctx, r.db).Preload("User").
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *ProjectUserRepositoryImpl) ListByProject(ctx context.Context, projectID uint) ([]*models.ProjectUser, error) {
	var members []*models.ProjectUser
	err := conn(ctx, r.db).Preload("User").Where("project_id = ?", projectID).Order("id").Find(&members).Error
	return members, err
}

func (r *ProjectUserRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]*models.ProjectUser, error) {
	var members []*models.ProjectUser
	err := conn(ctx, r.db).Where("user_id = ?", userID).Order("project_id").Find(&members).Error
	return members, err
}

func (r *ProjectUserRepositoryImpl) UpdateRole(ctx context.Context, projectID, userID uint, role models.Role) error {
	result := conn(ctx, r.db).Model(&models.ProjectUser{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProjectUserRepositoryImpl) Delete(ctx context.Context, projectID, userID uint) error {
	result := conn(ctx, r.db).Where("project_id = ? AND user_id = ?", projectID, userID).Delete(&models.ProjectUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProjectUserRepositoryImpl) MemberIDs(ctx context.Context, projectID uint, ids []uint) ([]uint, error) {
	var out []uint
	if len(ids) == 0 {
		return out, nil
	}
	err := conn(ctx, r.db).Model(&models.ProjectUser{}).
		Where("project_id = ? AND user_id IN ?", projectID, ids).
		Pluck("user_id", &out).Error
	return out, err
}
