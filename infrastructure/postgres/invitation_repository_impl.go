package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"kanban-api/domain/models"
	"kanban-api/domain/repositories"
)

type InvitationRepositoryImpl struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) repositories.InvitationRepository {
	return &InvitationRepositoryImpl{db: db}
}

func (r *InvitationRepositoryImpl) Create(ctx context.Context, invitation *models.ProjectInvitation) error {
	return conn(ctx, r.db).Create(invitation).Error
}

func (r *InvitationRepositoryImpl) Find(ctx context.Context, email string, projectID uint, token string) (*models.ProjectInvitation, error) {
	var invitation models.ProjectInvitation
	err := conn(ctx, r.db).
		Where("email = ? AND project_id = ? AND token = ?", email, projectID, token).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&models.ProjectInvitation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *InvitationRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := conn(ctx, r.db).Where("expires_at <= ?", now).Delete(&models.ProjectInvitation{})
	return result.RowsAffected, result.Error
}
