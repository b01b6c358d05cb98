package serviceimpl

import (
	"context"
	"strings"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/domain/ports"
	"kanban-api/domain/repositories"
	"kanban-api/domain/services"
	"kanban-api/pkg/apperror"
	"kanban-api/pkg/logger"
)

type ColumnServiceImpl struct {
	projectRepo    repositories.ProjectRepository
	columnRepo     repositories.ColumnRepository
	attachmentRepo repositories.AttachmentRepository
	tx             repositories.Transactor
	storage        ports.StoragePort
}

func NewColumnService(
	projectRepo repositories.ProjectRepository,
	columnRepo repositories.ColumnRepository,
	attachmentRepo repositories.AttachmentRepository,
	tx repositories.Transactor,
	storage ports.StoragePort,
) services.ColumnService {
	return &ColumnServiceImpl{
		projectRepo:    projectRepo,
		columnRepo:     columnRepo,
		attachmentRepo: attachmentRepo,
		tx:             tx,
		storage:        storage,
	}
}

func (s *ColumnServiceImpl) AddColumn(ctx context.Context, projectID uint, req *dto.CreateColumnRequest) (*models.Column, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, repoError(err, "project")
	}

	column := &models.Column{
		ProjectID: projectID,
		Name:      strings.TrimSpace(req.Name),
	}
	if err := s.columnRepo.Create(ctx, column); err != nil {
		return nil, apperror.Internal(err)
	}

	logger.InfoContext(ctx, "Column created", "project_id", projectID, "column_id", column.ID, "position", column.Position)
	return column, nil
}

func (s *ColumnServiceImpl) ListColumns(ctx context.Context, projectID uint) ([]*models.Column, error) {
	columns, err := s.columnRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return columns, nil
}

func (s *ColumnServiceImpl) GetColumn(ctx context.Context, projectID, columnID uint) (*models.Column, error) {
	column, err := s.columnRepo.GetWithTasks(ctx, projectID, columnID)
	if err != nil {
		return nil, repoError(err, "column")
	}
	return column, nil
}

func (s *ColumnServiceImpl) UpdateColumn(ctx context.Context, columnID uint, req *dto.UpdateColumnRequest) (*models.Column, error) {
	column, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return nil, repoError(err, "column")
	}

	column.Name = strings.TrimSpace(req.Name)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.columnRepo.Update(ctx, column); err != nil {
			return err
		}
		if req.Position == nil || *req.Position == column.Position {
			return nil
		}
		return s.columnRepo.Reorder(ctx, column, *req.Position)
	})
	if err != nil {
		return nil, repoError(err, "column")
	}

	logger.InfoContext(ctx, "Column updated", "column_id", columnID, "position", column.Position)
	return column, nil
}

// DeleteColumn ลบ column พร้อม tasks ทั้งหมด แล้วค่อยลบไฟล์แนบ
func (s *ColumnServiceImpl) DeleteColumn(ctx context.Context, columnID uint) error {
	var paths []string
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if paths, err = s.attachmentRepo.ListPathsByColumn(ctx, columnID); err != nil {
			return err
		}
		return s.columnRepo.Delete(ctx, columnID)
	})
	if err != nil {
		return repoError(err, "column")
	}

	logger.InfoContext(ctx, "Column deleted", "column_id", columnID, "files", len(paths))
	return removeFiles(ctx, s.storage, paths)
}
