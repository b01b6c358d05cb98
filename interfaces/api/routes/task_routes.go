package routes

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/dto"
	"kanban-api/interfaces/api/handlers"
	"kanban-api/interfaces/api/middleware"
)

// งานใน task ทำได้ทั้ง Admin และ Member ของโปรเจกต์
func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers) {
	byTask := middleware.RequireProjectRole(h.AccessService, middleware.TaskFromParam("id"))
	byColumn := middleware.RequireProjectRole(h.AccessService, middleware.ColumnFromParam("columnId"))

	tasks := api.Group("/task")
	tasks.Use(middleware.Protected(h.AuthService))
	tasks.Post("/",
		middleware.DecodeBody[dto.CreateTaskRequest](),
		middleware.RequireProjectRole(h.AccessService,
			middleware.ColumnFromBody("columnId", func(r *dto.CreateTaskRequest) uint { return r.ColumnID })),
		h.TaskHandler.CreateTask)
	tasks.Get("/column/:columnId", byColumn, h.TaskHandler.ListByColumn)
	tasks.Get("/column/:columnId/task/:taskId", byColumn, h.TaskHandler.GetTask)
	tasks.Put("/:id", byTask, h.TaskHandler.UpdateTask)
	tasks.Put("/:id/move", byTask, h.TaskHandler.MoveTask)
	tasks.Delete("/:id", byTask, h.TaskHandler.DeleteTask)

	assignees := api.Group("/taskassignee")
	assignees.Use(middleware.Protected(h.AuthService))
	assignees.Post("/update-assignees",
		middleware.DecodeBody[dto.UpdateAssigneesRequest](),
		middleware.RequireProjectRole(h.AccessService,
			middleware.TaskFromBody("taskId", func(r *dto.UpdateAssigneesRequest) uint { return r.TaskID })),
		h.TaskHandler.UpdateAssignees)
	assignees.Get("/task/:taskId",
		middleware.RequireProjectRole(h.AccessService, middleware.TaskFromParam("taskId")),
		h.TaskHandler.ListAssignees)
}
