package routes

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/interfaces/api/handlers"
	"kanban-api/interfaces/api/middleware"
)

// SetupMonitoringRoutes super admin เท่านั้น
// GET  /api/monitoring/mail-queue   - สถานะ mail outbox (NATS)
// GET  /api/monitoring/jobs         - scheduled jobs
// POST /api/monitoring/housekeeping - รัน cleanup ทันที
func SetupMonitoringRoutes(api fiber.Router, h *handlers.Handlers) {
	monitoring := api.Group("/monitoring")
	monitoring.Use(middleware.Protected(h.AuthService), middleware.SuperAdminOnly())

	monitoring.Get("/mail-queue", h.MonitoringHandler.GetMailQueue)
	monitoring.Get("/jobs", h.MonitoringHandler.ListJobs)
	monitoring.Post("/housekeeping", h.MonitoringHandler.RunHousekeeping)
}
