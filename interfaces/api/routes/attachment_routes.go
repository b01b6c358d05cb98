package routes

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/interfaces/api/handlers"
	"kanban-api/interfaces/api/middleware"
)

func SetupAttachmentRoutes(api fiber.Router, h *handlers.Handlers) {
	byAttachment := middleware.RequireProjectRole(h.AccessService, middleware.AttachmentFromParam("id"))

	attachments := api.Group("/attachment")
	attachments.Use(middleware.Protected(h.AuthService))
	attachments.Post("/upload",
		middleware.RequireProjectRole(h.AccessService, middleware.TaskFromForm("taskId")),
		h.AttachmentHandler.Upload)
	attachments.Get("/task/:taskId",
		middleware.RequireProjectRole(h.AccessService, middleware.TaskFromParam("taskId")),
		h.AttachmentHandler.ListByTask)
	attachments.Get("/download-attachment/:id", byAttachment, h.AttachmentHandler.Download)
	attachments.Delete("/:id", byAttachment, h.AttachmentHandler.Delete)
}
