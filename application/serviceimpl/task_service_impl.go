package serviceimpl

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/domain/ports"
	"kanban-api/domain/repositories"
	"kanban-api/domain/services"
	"kanban-api/pkg/apperror"
	"kanban-api/pkg/logger"
)

type TaskServiceImpl struct {
	projectRepo    repositories.ProjectRepository
	memberRepo     repositories.ProjectUserRepository
	columnRepo     repositories.ColumnRepository
	taskRepo       repositories.TaskRepository
	assigneeRepo   repositories.TaskAssigneeRepository
	attachmentRepo repositories.AttachmentRepository
	userRepo       repositories.UserRepository
	tx             repositories.Transactor
	storage        ports.StoragePort
	notifier       services.NotificationService
}

type TaskServiceDeps struct {
	ProjectRepo    repositories.ProjectRepository
	MemberRepo     repositories.ProjectUserRepository
	ColumnRepo     repositories.ColumnRepository
	TaskRepo       repositories.TaskRepository
	AssigneeRepo   repositories.TaskAssigneeRepository
	AttachmentRepo repositories.AttachmentRepository
	UserRepo       repositories.UserRepository
	Tx             repositories.Transactor
	Storage        ports.StoragePort
	Notifier       services.NotificationService
}

func NewTaskService(deps TaskServiceDeps) services.TaskService {
	return &TaskServiceImpl{
		projectRepo:    deps.ProjectRepo,
		memberRepo:     deps.MemberRepo,
		columnRepo:     deps.ColumnRepo,
		taskRepo:       deps.TaskRepo,
		assigneeRepo:   deps.AssigneeRepo,
		attachmentRepo: deps.AttachmentRepo,
		userRepo:       deps.UserRepo,
		tx:             deps.Tx,
		storage:        deps.Storage,
		notifier:       deps.Notifier,
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, ownerID uint, req *dto.CreateTaskRequest) (*models.Task, error) {
	priority, ok := models.ParsePriority(req.Priority)
	if !ok {
		return nil, apperror.Validation("priority must be Low, Medium or High")
	}

	if _, err := s.columnRepo.GetByID(ctx, req.ColumnID); err != nil {
		return nil, repoError(err, "column")
	}

	task := &models.Task{
		ColumnID:    req.ColumnID,
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, apperror.Internal(err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "column_id", task.ColumnID, "position", task.Position)
	return s.load(ctx, task.ID)
}

func (s *TaskServiceImpl) load(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.taskRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, repoError(err, "task")
	}
	return task, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, columnID, taskID uint) (*models.Task, error) {
	task, err := s.load(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.ColumnID != columnID {
		return nil, apperror.NotFound("task")
	}
	return task, nil
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, columnID uint) ([]*models.Task, error) {
	if _, err := s.columnRepo.GetByID(ctx, columnID); err != nil {
		return nil, repoError(err, "column")
	}
	tasks, err := s.taskRepo.ListByColumn(ctx, columnID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return tasks, nil
}

// UpdateTask ฟิลด์ nil = ไม่เปลี่ยน ถ้าส่ง columnId มาจะย้าย task ไปท้าย column นั้น
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, taskID uint, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, repoError(err, "task")
	}

	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Priority != nil {
		priority, ok := models.ParsePriority(*req.Priority)
		if !ok {
			return nil, apperror.Validation("priority must be Low, Medium or High")
		}
		task.Priority = priority
	}

	moveTo := uint(0)
	if req.ColumnID != nil && *req.ColumnID != task.ColumnID {
		if err := s.checkSameProject(ctx, task.ColumnID, *req.ColumnID); err != nil {
			return nil, err
		}
		moveTo = *req.ColumnID
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return err
		}
		if moveTo == 0 {
			return nil
		}
		return s.taskRepo.Move(ctx, task, moveTo, math.MaxInt32)
	})
	if err != nil {
		return nil, repoError(err, "task")
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID)
	return s.load(ctx, taskID)
}

// checkSameProject ย้าย task ข้าม project ไม่ได้
func (s *TaskServiceImpl) checkSameProject(ctx context.Context, sourceID, targetID uint) error {
	source, err := s.columnRepo.GetByID(ctx, sourceID)
	if err != nil {
		return repoError(err, "column")
	}
	target, err := s.columnRepo.GetByID(ctx, targetID)
	if err != nil {
		return repoError(err, "column")
	}
	if source.ProjectID != target.ProjectID {
		return apperror.Validation("target column belongs to another project")
	}
	return nil
}

func (s *TaskServiceImpl) MoveTask(ctx context.Context, taskID uint, req *dto.MoveTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, repoError(err, "task")
	}
	if err := s.checkSameProject(ctx, task.ColumnID, req.ColumnID); err != nil {
		return nil, err
	}

	from := task.ColumnID
	if err := s.taskRepo.Move(ctx, task, req.ColumnID, req.Position); err != nil {
		return nil, repoError(err, "task")
	}

	logger.InfoContext(ctx, "Task moved", "task_id", taskID, "from_column", from, "to_column", task.ColumnID, "position", task.Position)
	return s.load(ctx, taskID)
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID uint) error {
	var paths []string
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if paths, err = s.attachmentRepo.ListPathsByTask(ctx, taskID); err != nil {
			return err
		}
		return s.taskRepo.Delete(ctx, taskID)
	})
	if err != nil {
		return repoError(err, "task")
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "files", len(paths))
	return removeFiles(ctx, s.storage, paths)
}

func (s *TaskServiceImpl) UpdateAssignees(ctx context.Context, req *dto.UpdateAssigneesRequest) (*dto.UpdateAssigneesResponse, error) {
	task, err := s.taskRepo.GetByID(ctx, req.TaskID)
	if err != nil {
		return nil, repoError(err, "task")
	}
	projectID, err := s.taskRepo.GetProjectID(ctx, task.ID)
	if err != nil {
		return nil, repoError(err, "task")
	}

	wanted := uniqueIDs(req.UserIDs)
	members, err := s.memberRepo.MemberIDs(ctx, projectID, wanted)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(members) != len(wanted) {
		var outsiders []string
		for _, id := range wanted {
			if !slices.Contains(members, id) {
				outsiders = append(outsiders, fmt.Sprint(id))
			}
		}
		return nil, apperror.Validation("users are not members of this project: " + strings.Join(outsiders, ", "))
	}

	current, err := s.assigneeRepo.ListByTask(ctx, task.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	currentIDs := make([]uint, 0, len(current))
	for _, a := range current {
		currentIDs = append(currentIDs, a.UserID)
	}

	assigned := difference(wanted, currentIDs)
	unassigned := difference(currentIDs, wanted)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.assigneeRepo.Add(ctx, task.ID, assigned); err != nil {
			return err
		}
		return s.assigneeRepo.Remove(ctx, task.ID, unassigned)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	logger.InfoContext(ctx, "Task assignees updated", "task_id", task.ID, "assigned", assigned, "unassigned", unassigned)
	s.notifyAssigned(ctx, task, projectID, assigned)

	return &dto.UpdateAssigneesResponse{
		Message:    "Assignees updated successfully",
		Assigned:   assigned,
		Unassigned: unassigned,
	}, nil
}

// notifyAssigned ส่งอีเมลแบบ best-effort ส่งไม่ได้แค่ log
func (s *TaskServiceImpl) notifyAssigned(ctx context.Context, task *models.Task, projectID uint, userIDs []uint) {
	if len(userIDs) == 0 {
		return
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		logger.WarnContext(ctx, "Skipping assignment emails", "task_id", task.ID, "error", err)
		return
	}
	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		logger.WarnContext(ctx, "Skipping assignment emails", "task_id", task.ID, "error", err)
		return
	}

	for _, user := range users {
		if err := s.notifier.SendTaskAssignment(ctx, user, task, project); err != nil {
			logger.WarnContext(ctx, "Assignment email failed", "task_id", task.ID, "user_id", user.ID, "error", err)
		}
	}
}

func (s *TaskServiceImpl) ListAssignees(ctx context.Context, taskID uint) ([]*models.TaskAssignee, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, repoError(err, "task")
	}
	assignees, err := s.assigneeRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return assignees, nil
}

// uniqueIDs ตัด id ซ้ำโดยคงลำดับเดิม
func uniqueIDs(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// difference คืน id ใน a ที่ไม่อยู่ใน b
func difference(a, b []uint) []uint {
	out := make([]uint, 0)
	for _, id := range a {
		if !slices.Contains(b, id) {
			out = append(out, id)
		}
	}
	return out
}
