package handlers

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/dto"
	"kanban-api/domain/services"
	"kanban-api/pkg/utils"
)

type SubtaskHandler struct {
	subtaskService services.SubtaskService
}

func NewSubtaskHandler(subtaskService services.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{subtaskService: subtaskService}
}

// ListSubtasks GET /api/subtasks?taskId=
func (h *SubtaskHandler) ListSubtasks(c *fiber.Ctx) error {
	taskID, err := queryID(c, "taskId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	subtasks, err := h.subtaskService.ListSubtasks(c.UserContext(), taskID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	out := make([]*dto.SubtaskResponse, 0, len(subtasks))
	for _, s := range subtasks {
		out = append(out, dto.SubtaskToSubtaskResponse(s))
	}
	return utils.SuccessResponse(c, out)
}

func (h *SubtaskHandler) GetSubtask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	subtask, err := h.subtaskService.GetSubtask(c.UserContext(), id)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.SubtaskToSubtaskResponse(subtask))
}

func (h *SubtaskHandler) AddSubtask(c *fiber.Ctx) error {
	var req dto.CreateSubtaskRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	subtask, err := h.subtaskService.AddSubtask(c.UserContext(), &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.CreatedResponse(c, dto.SubtaskToSubtaskResponse(subtask))
}

func (h *SubtaskHandler) UpdateSubtask(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	var req dto.UpdateSubtaskRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	subtask, err := h.subtaskService.UpdateSubtask(c.UserContext(), user, id, &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.SubtaskToSubtaskResponse(subtask))
}

// ToggleSubtask PATCH /api/subtasks/:id/toggle
func (h *SubtaskHandler) ToggleSubtask(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	subtask, err := h.subtaskService.ToggleSubtask(c.UserContext(), user, id)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.SubtaskToSubtaskResponse(subtask))
}

func (h *SubtaskHandler) DeleteSubtask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	if err := h.subtaskService.DeleteSubtask(c.UserContext(), id); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.MessageResponse(c, "Subtask deleted")
}
