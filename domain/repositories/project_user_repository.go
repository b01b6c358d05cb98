package repositories

import (
	"context"

	"kanban-api/domain/models"
)

type ProjectUserRepository interface {
	Create(ctx context.Context, member *models.ProjectUser) error
	Get(ctx context.Context, projectID, userID uint) (*models.ProjectUser, error)
	ListByProject(ctx context.Context, projectID uint) ([]*models.ProjectUser, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.ProjectUser, error)
	UpdateRole(ctx context.Context, projectID, userID uint, role models.Role) error
	Delete(ctx context.Context, projectID, userID uint) error
	// MemberIDs คืน user id ใน ids ที่เป็นสมาชิกของ project
	MemberIDs(ctx context.Context, projectID uint, ids []uint) ([]uint, error)
}
