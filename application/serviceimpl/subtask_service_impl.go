package serviceimpl

import (
	"context"
	"strings"
	"time"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/domain/repositories"
	"kanban-api/domain/services"
	"kanban-api/pkg/apperror"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/utils"
)

type SubtaskServiceImpl struct {
	taskRepo    repositories.TaskRepository
	subtaskRepo repositories.SubtaskRepository
	now         func() time.Time
}

func NewSubtaskService(taskRepo repositories.TaskRepository, subtaskRepo repositories.SubtaskRepository) services.SubtaskService {
	return &SubtaskServiceImpl{
		taskRepo:    taskRepo,
		subtaskRepo: subtaskRepo,
		now:         time.Now,
	}
}

func (s *SubtaskServiceImpl) ListSubtasks(ctx context.Context, taskID uint) ([]*models.Subtask, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, repoError(err, "task")
	}
	subtasks, err := s.subtaskRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return subtasks, nil
}

func (s *SubtaskServiceImpl) GetSubtask(ctx context.Context, id uint) (*models.Subtask, error) {
	subtask, err := s.subtaskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "subtask")
	}
	return subtask, nil
}

func (s *SubtaskServiceImpl) AddSubtask(ctx context.Context, req *dto.CreateSubtaskRequest) (*models.Subtask, error) {
	if _, err := s.taskRepo.GetByID(ctx, req.TaskID); err != nil {
		return nil, repoError(err, "task")
	}

	subtask := &models.Subtask{
		TaskID: req.TaskID,
		Title:  strings.TrimSpace(req.Title),
	}
	if err := s.subtaskRepo.Create(ctx, subtask); err != nil {
		return nil, apperror.Internal(err)
	}

	logger.InfoContext(ctx, "Subtask created", "subtask_id", subtask.ID, "task_id", subtask.TaskID)
	return subtask, nil
}

func (s *SubtaskServiceImpl) UpdateSubtask(ctx context.Context, actor *utils.UserContext, id uint, req *dto.UpdateSubtaskRequest) (*models.Subtask, error) {
	subtask, err := s.subtaskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "subtask")
	}

	if req.Title != nil {
		subtask.Title = strings.TrimSpace(*req.Title)
	}
	if req.IsCompleted != nil {
		s.setCompleted(subtask, actor, *req.IsCompleted)
	}
	return s.save(ctx, subtask)
}

func (s *SubtaskServiceImpl) ToggleSubtask(ctx context.Context, actor *utils.UserContext, id uint) (*models.Subtask, error) {
	subtask, err := s.subtaskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "subtask")
	}

	s.setCompleted(subtask, actor, !subtask.IsCompleted)
	return s.save(ctx, subtask)
}

func (s *SubtaskServiceImpl) save(ctx context.Context, subtask *models.Subtask) (*models.Subtask, error) {
	if err := s.subtaskRepo.Update(ctx, subtask); err != nil {
		return nil, repoError(err, "subtask")
	}
	logger.InfoContext(ctx, "Subtask updated", "subtask_id", subtask.ID, "completed", subtask.IsCompleted)
	return subtask, nil
}

// setCompleted ผู้ทำเสร็จมาจาก session เสมอ ไม่รับจาก client
func (s *SubtaskServiceImpl) setCompleted(subtask *models.Subtask, actor *utils.UserContext, done bool) {
	if !done {
		subtask.IsCompleted = false
		subtask.CompletedBy = nil
		subtask.CompletedAt = nil
		return
	}
	if subtask.IsCompleted {
		return
	}

	name := actor.DisplayName()
	if name == "" {
		name = actor.Email
	}
	now := s.now().UTC()
	subtask.IsCompleted = true
	subtask.CompletedBy = &name
	subtask.CompletedAt = &now
}

func (s *SubtaskServiceImpl) DeleteSubtask(ctx context.Context, id uint) error {
	if err := s.subtaskRepo.Delete(ctx, id); err != nil {
		return repoError(err, "subtask")
	}
	logger.InfoContext(ctx, "Subtask deleted", "subtask_id", id)
	return nil
}
