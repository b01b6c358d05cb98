package services

import (
	"context"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/pkg/utils"
)

type ProjectService interface {
	// CreateProject สร้าง project และ membership Admin ของผู้สร้างใน transaction เดียว
	CreateProject(ctx context.Context, ownerID uint, req *dto.CreateProjectRequest) (*models.Project, error)
	ListProjects(ctx context.Context, actor *utils.UserContext) ([]*models.Project, error)
	UserProjects(ctx context.Context, userID uint) ([]dto.ProjectSummaryResponse, error)
	GetProject(ctx context.Context, id uint) (*models.Project, error)
	UpdateProject(ctx context.Context, id uint, req *dto.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id uint) error
}

type MembershipService interface {
	InviteUser(ctx context.Context, inviterID uint, req *dto.InviteUserRequest) (*models.ProjectInvitation, error)
	ConfirmInvite(ctx context.Context, req *dto.ConfirmInviteRequest) (*models.ProjectUser, error)
	RemoveUser(ctx context.Context, projectID, userID uint) error
	UpdateRole(ctx context.Context, projectID, userID uint, role string) (*models.ProjectUser, error)
	GetRole(ctx context.Context, actor *utils.UserContext, projectID, userID uint) (models.Role, error)
}
