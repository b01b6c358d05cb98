package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"kanban-api/pkg/metrics"
)

// MetricsMiddleware นับ request และเวลาตอบกลับ แยกตาม route pattern (ไม่ใช่ path จริง)
func MetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
		}

		route := c.Route().Path
		m.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())

		return err
	}
}
