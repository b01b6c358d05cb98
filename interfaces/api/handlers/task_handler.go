package handlers

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/dto"
	"kanban-api/domain/services"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask POST /api/task ต่อท้าย column
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	var req dto.CreateTaskRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	task, err := h.taskService.CreateTask(c.UserContext(), user.ID, &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	var req dto.UpdateTaskRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	task, err := h.taskService.UpdateTask(c.UserContext(), id, &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

// MoveTask PUT /api/task/:id/move
func (h *TaskHandler) MoveTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	var req dto.MoveTaskRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	task, err := h.taskService.MoveTask(ctx, id, &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	logger.DebugContext(ctx, "Task moved", "task_id", id, "column_id", task.ColumnID, "position", task.Position)
	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	if err := h.taskService.DeleteTask(c.UserContext(), id); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.MessageResponse(c, "Task deleted")
}

// ListByColumn GET /api/task/column/:columnId
func (h *TaskHandler) ListByColumn(c *fiber.Ctx) error {
	columnID, err := paramID(c, "columnId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	tasks, err := h.taskService.ListTasks(c.UserContext(), columnID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	out := make([]*dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, dto.TaskToTaskResponse(t))
	}
	return utils.SuccessResponse(c, out)
}

// GetTask GET /api/task/column/:columnId/task/:taskId
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	columnID, err := paramID(c, "columnId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	taskID, err := paramID(c, "taskId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	task, err := h.taskService.GetTask(c.UserContext(), columnID, taskID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

// UpdateAssignees POST /api/taskassignee/update-assignees
func (h *TaskHandler) UpdateAssignees(c *fiber.Ctx) error {
	var req dto.UpdateAssigneesRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.taskService.UpdateAssignees(c.UserContext(), &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, resp)
}

// ListAssignees GET /api/taskassignee/task/:taskId
func (h *TaskHandler) ListAssignees(c *fiber.Ctx) error {
	taskID, err := paramID(c, "taskId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	assignees, err := h.taskService.ListAssignees(c.UserContext(), taskID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	out := make([]dto.AssigneeResponse, 0, len(assignees))
	for _, a := range assignees {
		out = append(out, dto.AssigneeToAssigneeResponse(a))
	}
	return utils.SuccessResponse(c, out)
}
