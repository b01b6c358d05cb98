package repositories

import (
	"context"

	"kanban-api/domain/models"
)

type ColumnRepository interface {
	// Create ต่อท้าย column ใหม่ (position = จำนวน column เดิม)
	Create(ctx context.Context, column *models.Column) error
	GetByID(ctx context.Context, id uint) (*models.Column, error)
	// GetWithTasks โหลด tasks ที่เรียงตาม position พร้อมข้อมูลลูก
	GetWithTasks(ctx context.Context, projectID, id uint) (*models.Column, error)
	ListByProject(ctx context.Context, projectID uint) ([]*models.Column, error)
	Update(ctx context.Context, column *models.Column) error
	// Reorder ย้าย column ไปที่ position แล้วเรียง position ของทั้ง project ใหม่
	Reorder(ctx context.Context, column *models.Column, position int) error
	// Delete ลบ column พร้อม tasks และข้อมูลลูก แล้วเรียง position ที่เหลือใหม่
	Delete(ctx context.Context, id uint) error
}
