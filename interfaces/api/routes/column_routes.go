package routes

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/models"
	"kanban-api/interfaces/api/handlers"
	"kanban-api/interfaces/api/middleware"
)

func SetupColumnRoutes(api fiber.Router, h *handlers.Handlers) {
	protected := middleware.Protected(h.AuthService)

	byProject := api.Group("/project/:projectId/columns", protected)
	byProject.Get("/",
		middleware.RequireProjectRole(h.AccessService, middleware.ProjectFromParam("projectId")),
		h.ColumnHandler.ListColumns)
	byProject.Post("/",
		middleware.RequireProjectRole(h.AccessService, middleware.ProjectFromParam("projectId"), models.RoleAdmin),
		h.ColumnHandler.AddColumn)
	byProject.Get("/:columnId",
		middleware.RequireProjectRole(h.AccessService, middleware.ProjectFromParam("projectId")),
		h.ColumnHandler.GetColumn)

	admin := middleware.RequireProjectRole(h.AccessService, middleware.ColumnFromParam("columnId"), models.RoleAdmin)
	columns := api.Group("/columns", protected)
	columns.Put("/:columnId", admin, h.ColumnHandler.UpdateColumn)
	columns.Delete("/:columnId", admin, h.ColumnHandler.DeleteColumn)
}
