package routes

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/interfaces/api/handlers"
	"kanban-api/interfaces/api/middleware"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers) {
	protected := middleware.Protected(h.AuthService)

	api.Post("/register", h.AuthHandler.Register)
	api.Post("/login", h.AuthHandler.Login)
	api.Post("/forgot-password", h.AuthHandler.ForgotPassword)
	api.Post("/reset-password", h.AuthHandler.ResetPassword)
	api.Post("/verify-email", h.AuthHandler.VerifyEmail)

	// Google OAuth
	api.Get("/login-google", h.AuthHandler.GoogleLogin)
	api.Get("/google-callback", h.AuthHandler.GoogleCallback)

	api.Post("/logout", protected, h.AuthHandler.Logout)
	api.Get("/user", protected, h.AuthHandler.Me)
}
