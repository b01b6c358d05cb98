package routes

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/dto"
	"kanban-api/interfaces/api/handlers"
	"kanban-api/interfaces/api/middleware"
)

func SetupSubtaskRoutes(api fiber.Router, h *handlers.Handlers) {
	bySubtask := middleware.RequireProjectRole(h.AccessService, middleware.SubtaskFromParam("id"))

	subtasks := api.Group("/subtasks")
	subtasks.Use(middleware.Protected(h.AuthService))
	subtasks.Get("/",
		middleware.RequireProjectRole(h.AccessService, middleware.TaskFromQuery("taskId")),
		h.SubtaskHandler.ListSubtasks)
	subtasks.Post("/",
		middleware.DecodeBody[dto.CreateSubtaskRequest](),
		middleware.RequireProjectRole(h.AccessService,
			middleware.TaskFromBody("taskId", func(r *dto.CreateSubtaskRequest) uint { return r.TaskID })),
		h.SubtaskHandler.AddSubtask)
	subtasks.Get("/:id", bySubtask, h.SubtaskHandler.GetSubtask)
	subtasks.Put("/:id", bySubtask, h.SubtaskHandler.UpdateSubtask)
	subtasks.Patch("/:id/toggle", bySubtask, h.SubtaskHandler.ToggleSubtask)
	subtasks.Delete("/:id", bySubtask, h.SubtaskHandler.DeleteSubtask)
}
