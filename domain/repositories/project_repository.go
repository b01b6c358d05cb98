package repositories

import (
	"context"

	"kanban-api/domain/models"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	// GetByID โหลดสมาชิกพร้อม user มาด้วย
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	// Delete ลบ project พร้อม columns, tasks และข้อมูลลูกทั้งหมด
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Project, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Project, error)
}
