package routes

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/interfaces/api/handlers"
	"kanban-api/interfaces/api/middleware"
)

func SetupUserRoutes(api fiber.Router, h *handlers.Handlers) {
	users := api.Group("/users")
	users.Use(middleware.Protected(h.AuthService))
	users.Get("/", middleware.SuperAdminOnly(), h.UserHandler.ListUsers)
	users.Get("/exists", h.UserHandler.Exists)
	users.Get("/:id", h.UserHandler.GetUser)
	// self หรือ super admin ตรวจใน service
	users.Put("/:id", h.UserHandler.UpdateUser)
	users.Delete("/:id", h.UserHandler.DeleteUser)
}
