package serviceimpl

import (
	"context"
	"errors"
	"slices"

	"gorm.io/gorm"

	"kanban-api/domain/models"
	"kanban-api/domain/repositories"
	"kanban-api/domain/services"
	"kanban-api/pkg/apperror"
	"kanban-api/pkg/utils"
)

type AccessServiceImpl struct {
	projectRepo    repositories.ProjectRepository
	memberRepo     repositories.ProjectUserRepository
	columnRepo     repositories.ColumnRepository
	taskRepo       repositories.TaskRepository
	subtaskRepo    repositories.SubtaskRepository
	attachmentRepo repositories.AttachmentRepository
}

func NewAccessService(
	projectRepo repositories.ProjectRepository,
	memberRepo repositories.ProjectUserRepository,
	columnRepo repositories.ColumnRepository,
	taskRepo repositories.TaskRepository,
	subtaskRepo repositories.SubtaskRepository,
	attachmentRepo repositories.AttachmentRepository,
) services.AccessService {
	return &AccessServiceImpl{
		projectRepo:    projectRepo,
		memberRepo:     memberRepo,
		columnRepo:     columnRepo,
		taskRepo:       taskRepo,
		subtaskRepo:    subtaskRepo,
		attachmentRepo: attachmentRepo,
	}
}

func (s *AccessServiceImpl) ProjectOfColumn(ctx context.Context, columnID uint) (uint, error) {
	column, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return 0, repoError(err, "column")
	}
	return column.ProjectID, nil
}

func (s *AccessServiceImpl) ProjectOfTask(ctx context.Context, taskID uint) (uint, error) {
	projectID, err := s.taskRepo.GetProjectID(ctx, taskID)
	if err != nil {
		return 0, repoError(err, "task")
	}
	return projectID, nil
}

func (s *AccessServiceImpl) ProjectOfSubtask(ctx context.Context, subtaskID uint) (uint, error) {
	projectID, err := s.subtaskRepo.GetProjectID(ctx, subtaskID)
	if err != nil {
		return 0, repoError(err, "subtask")
	}
	return projectID, nil
}

func (s *AccessServiceImpl) ProjectOfAttachment(ctx context.Context, attachmentID uint) (uint, error) {
	projectID, err := s.attachmentRepo.GetProjectID(ctx, attachmentID)
	if err != nil {
		return 0, repoError(err, "attachment")
	}
	return projectID, nil
}

func (s *AccessServiceImpl) Authorize(ctx context.Context, actor *utils.UserContext, projectID uint, roles ...models.Role) error {
	if actor == nil {
		return apperror.ErrUnauthorized
	}

	member, err := s.memberRepo.Get(ctx, projectID, actor.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.Internal(err)
	}

	// super admin ผ่านทุก role แต่ project ต้องมีอยู่จริง
	if member == nil || actor.IsSuperAdmin {
		if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
			return repoError(err, "project")
		}
		if actor.IsSuperAdmin {
			return nil
		}
		return apperror.Forbidden("you are not a member of this project")
	}

	if len(roles) > 0 && !slices.Contains(roles, member.Role) {
		return apperror.Forbidden("this action requires the " + string(roles[0]) + " role")
	}
	return nil
}
