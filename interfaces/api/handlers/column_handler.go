package handlers

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/dto"
	"kanban-api/domain/services"
	"kanban-api/pkg/utils"
)

type ColumnHandler struct {
	columnService services.ColumnService
}

func NewColumnHandler(columnService services.ColumnService) *ColumnHandler {
	return &ColumnHandler{columnService: columnService}
}

// ListColumns GET /api/project/:projectId/columns เรียงตาม position พร้อม task
func (h *ColumnHandler) ListColumns(c *fiber.Ctx) error {
	projectID, err := paramID(c, "projectId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	columns, err := h.columnService.ListColumns(c.UserContext(), projectID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	out := make([]*dto.ColumnResponse, 0, len(columns))
	for _, col := range columns {
		out = append(out, dto.ColumnToColumnResponse(col))
	}
	return utils.SuccessResponse(c, out)
}

func (h *ColumnHandler) AddColumn(c *fiber.Ctx) error {
	projectID, err := paramID(c, "projectId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	var req dto.CreateColumnRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	column, err := h.columnService.AddColumn(c.UserContext(), projectID, &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.CreatedResponse(c, dto.ColumnToColumnResponse(column))
}

func (h *ColumnHandler) GetColumn(c *fiber.Ctx) error {
	projectID, err := paramID(c, "projectId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	columnID, err := paramID(c, "columnId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	column, err := h.columnService.GetColumn(c.UserContext(), projectID, columnID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.ColumnToColumnResponse(column))
}

func (h *ColumnHandler) UpdateColumn(c *fiber.Ctx) error {
	columnID, err := paramID(c, "columnId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	var req dto.UpdateColumnRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	column, err := h.columnService.UpdateColumn(c.UserContext(), columnID, &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.ColumnToColumnResponse(column))
}

func (h *ColumnHandler) DeleteColumn(c *fiber.Ctx) error {
	columnID, err := paramID(c, "columnId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	if err := h.columnService.DeleteColumn(c.UserContext(), columnID); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.MessageResponse(c, "Column deleted")
}
