package services

import (
	"context"

	"kanban-api/domain/models"
	"kanban-api/pkg/utils"
)

// AccessService หา project ของ entity แล้วตรวจ role ของผู้เรียก
type AccessService interface {
	ProjectOfColumn(ctx context.Context, columnID uint) (uint, error)
	ProjectOfTask(ctx context.Context, taskID uint) (uint, error)
	ProjectOfSubtask(ctx context.Context, subtaskID uint) (uint, error)
	ProjectOfAttachment(ctx context.Context, attachmentID uint) (uint, error)

	// Authorize คืน NotFound ถ้าไม่มี project และ Forbidden ถ้าไม่ใช่สมาชิกหรือ role ไม่พอ
	// roles ว่าง = สมาชิก role ใดก็ได้
	Authorize(ctx context.Context, actor *utils.UserContext, projectID uint, roles ...models.Role) error
}
