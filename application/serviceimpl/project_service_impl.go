package serviceimpl

import (
	"context"
	"strings"

	"github.com/gosimple/slug"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/domain/ports"
	"kanban-api/domain/repositories"
	"kanban-api/domain/services"
	"kanban-api/pkg/apperror"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/utils"
)

type ProjectServiceImpl struct {
	projectRepo    repositories.ProjectRepository
	memberRepo     repositories.ProjectUserRepository
	attachmentRepo repositories.AttachmentRepository
	tx             repositories.Transactor
	storage        ports.StoragePort
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	memberRepo repositories.ProjectUserRepository,
	attachmentRepo repositories.AttachmentRepository,
	tx repositories.Transactor,
	storage ports.StoragePort,
) services.ProjectService {
	return &ProjectServiceImpl{
		projectRepo:    projectRepo,
		memberRepo:     memberRepo,
		attachmentRepo: attachmentRepo,
		tx:             tx,
		storage:        storage,
	}
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, ownerID uint, req *dto.CreateProjectRequest) (*models.Project, error) {
	title := strings.TrimSpace(req.Title)
	project := &models.Project{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Slug:        slug.Make(title),
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Create(ctx, project); err != nil {
			return err
		}
		return s.memberRepo.Create(ctx, &models.ProjectUser{
			ProjectID: project.ID,
			UserID:    ownerID,
			Role:      models.RoleAdmin,
		})
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create project", "owner_id", ownerID, "error", err)
		return nil, apperror.Internal(err)
	}

	logger.InfoContext(ctx, "Project created", "project_id", project.ID, "owner_id", ownerID)
	return s.GetProject(ctx, project.ID)
}

// ListProjects super admin เห็นทุก project คนอื่นเห็นเฉพาะที่เป็นสมาชิก
func (s *ProjectServiceImpl) ListProjects(ctx context.Context, actor *utils.UserContext) ([]*models.Project, error) {
	var (
		projects []*models.Project
		err      error
	)
	if actor.IsSuperAdmin {
		projects, err = s.projectRepo.List(ctx)
	} else {
		projects, err = s.projectRepo.ListByUser(ctx, actor.ID)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return projects, nil
}

func (s *ProjectServiceImpl) UserProjects(ctx context.Context, userID uint) ([]dto.ProjectSummaryResponse, error) {
	memberships, err := s.memberRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	roles := make(map[uint]models.Role, len(memberships))
	for _, m := range memberships {
		roles[m.ProjectID] = m.Role
	}

	projects, err := s.projectRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	out := make([]dto.ProjectSummaryResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, dto.ProjectSummaryResponse{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Slug:        p.Slug,
			Role:        string(roles[p.ID]),
		})
	}
	return out, nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "project")
	}
	return project, nil
}

func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, id uint, req *dto.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "project")
	}

	project.Title = strings.TrimSpace(req.Title)
	project.Description = strings.TrimSpace(req.Description)
	project.Slug = slug.Make(project.Title)
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, apperror.Internal(err)
	}

	logger.InfoContext(ctx, "Project updated", "project_id", id)
	return project, nil
}

// DeleteProject ลบ row ทั้งหมดใน transaction แล้วค่อยลบไฟล์แนบ
func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, id uint) error {
	var paths []string
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if paths, err = s.attachmentRepo.ListPathsByProject(ctx, id); err != nil {
			return err
		}
		return s.projectRepo.Delete(ctx, id)
	})
	if err != nil {
		return repoError(err, "project")
	}

	logger.InfoContext(ctx, "Project deleted", "project_id", id, "files", len(paths))
	return removeFiles(ctx, s.storage, paths)
}
