package services

import (
	"context"

	"kanban-api/domain/models"
)

// NotificationService สร้างและส่งอีเมลของระบบ
type NotificationService interface {
	SendVerification(ctx context.Context, user *models.User, token string) error
	SendPasswordReset(ctx context.Context, user *models.User, token string) error
	SendInvitation(ctx context.Context, invitation *models.ProjectInvitation, project *models.Project) error
	SendTaskAssignment(ctx context.Context, assignee *models.User, task *models.Task, project *models.Project) error
}
