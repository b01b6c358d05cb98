package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"kanban-api/pkg/logger"
)

// LoggerMiddleware log ทุก request ระดับ log ตาม status
// ต้องอยู่หลัง RequestIDMiddleware เพื่อให้มี request_id
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		logger.DebugContext(c.UserContext(), "Request started",
			"method", c.Method(),
			"path", c.Path(),
			"ip", c.IP(),
		)

		err := c.Next()

		status := c.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		logFunc := logger.InfoContext
		switch {
		case status >= fiber.StatusInternalServerError:
			logFunc = logger.ErrorContext
		case status >= fiber.StatusBadRequest:
			logFunc = logger.WarnContext
		}

		// UserContext อาจมี user_id แล้วถ้าผ่าน Protected
		logFunc(c.UserContext(), "Request completed",
			"method", c.Method(),
			"path", c.Path(),
			"route", c.Route().Path,
			"status", status,
			"latency", time.Since(start).String(),
			"user_agent", c.Get(fiber.HeaderUserAgent),
		)

		return err
	}
}
