package repositories

import (
	"context"
	"time"

	"kanban-api/domain/models"
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation *models.ProjectInvitation) error
	Find(ctx context.Context, email string, projectID uint, token string) (*models.ProjectInvitation, error)
	Delete(ctx context.Context, id uint) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
