package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/dto"
	"kanban-api/domain/ports"
	"kanban-api/domain/services"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/scheduler"
	"kanban-api/pkg/utils"
)

// HealthCheck ตรวจ dependency หนึ่งตัว คืน nil เมื่อปกติ
type HealthCheck func(ctx context.Context) error

// MonitoringHandler health check, สถานะ mail outbox และ housekeeping
type MonitoringHandler struct {
	appName      string
	checks       map[string]HealthCheck
	outbox       ports.OutboxStatusPort
	housekeeping services.HousekeepingService
	scheduler    scheduler.JobScheduler
}

func NewMonitoringHandler(
	appName string,
	checks map[string]HealthCheck,
	outbox ports.OutboxStatusPort,
	housekeeping services.HousekeepingService,
	jobScheduler scheduler.JobScheduler,
) *MonitoringHandler {
	return &MonitoringHandler{
		appName:      appName,
		checks:       checks,
		outbox:       outbox,
		housekeeping: housekeeping,
		scheduler:    jobScheduler,
	}
}

// Health GET /health คืน 503 ถ้า dependency ตัวใดล้ม
func (h *MonitoringHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	resp := dto.HealthResponse{
		Status:   "ok",
		App:      h.appName,
		Services: make(map[string]string, len(h.checks)),
	}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			logger.WarnContext(ctx, "Health check failed", "service", name, "error", err)
			resp.Services[name] = "down"
			resp.Status = "degraded"
			continue
		}
		resp.Services[name] = "up"
	}

	if resp.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

// GetMailQueue GET /api/monitoring/mail-queue
func (h *MonitoringHandler) GetMailQueue(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if h.outbox == nil {
		logger.WarnContext(ctx, "Mail outbox not available")
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Mail outbox is not enabled", nil)
	}

	status, err := h.outbox.GetQueueStatus(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get mail queue status", "error", err)
		return utils.InternalServerErrorResponse(c)
	}
	return utils.SuccessResponse(c, status)
}

// ListJobs GET /api/monitoring/jobs
func (h *MonitoringHandler) ListJobs(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.Map{
		"running": h.scheduler.IsRunning(),
		"jobs":    h.scheduler.ListJobs(),
	})
}

// RunHousekeeping POST /api/monitoring/housekeeping รันรอบ cleanup ทันที
func (h *MonitoringHandler) RunHousekeeping(c *fiber.Ctx) error {
	ctx := c.UserContext()

	result, err := h.housekeeping.RunCleanup(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Housekeeping run failed", "error", err)
		return utils.InternalServerErrorResponse(c)
	}
	return utils.SuccessResponse(c, result)
}
