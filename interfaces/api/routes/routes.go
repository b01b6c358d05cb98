package routes

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/interfaces/api/handlers"
	"kanban-api/pkg/metrics"
)

// MaxRequestBodySize ใช้เป็น BodyLimit ของ fiber ต้องเผื่อเกินขนาดไฟล์แนบสูงสุด (10MB)
// ให้ AttachmentService ตอบ FILE_TOO_LARGE เอง ส่วน body ที่ใหญ่กว่านี้ fasthttp ตอบ 413 ผ่าน ErrorHandler
const MaxRequestBodySize = 32 * 1024 * 1024

// Options ค่าที่ routes ต้องใช้นอกเหนือจาก handler
type Options struct {
	// UploadsDir เปิด /Uploads เมื่อใช้ local storage (ว่าง = ไม่เปิด)
	UploadsDir string
	Metrics    *metrics.Metrics
}

func SetupRoutes(app *fiber.App, h *handlers.Handlers, opts Options) {
	// health, metrics และไฟล์ static อยู่นอก /api
	SetupHealthRoutes(app, h)
	SetupMetricsRoutes(app, opts.Metrics)
	if opts.UploadsDir != "" {
		app.Static("/Uploads", opts.UploadsDir, fiber.Static{Browse: false})
	}

	api := app.Group("/api")

	SetupAuthRoutes(api, h)
	SetupUserRoutes(api, h)
	SetupProjectRoutes(api, h)
	SetupMembershipRoutes(api, h)
	SetupColumnRoutes(api, h)
	SetupTaskRoutes(api, h)
	SetupSubtaskRoutes(api, h)
	SetupAttachmentRoutes(api, h)
	SetupMonitoringRoutes(api, h)
}
