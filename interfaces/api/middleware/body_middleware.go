package middleware

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/pkg/logger"
	"kanban-api/pkg/utils"
)

// DecodeBody parse body เป็น T ครั้งเดียวแล้วเก็บใน locals
// ใช้ก่อน guard ที่อ่าน id จาก body เพื่อให้ guard กับ handler เห็นค่าเดียวกัน
func DecodeBody[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)
		if err := c.BodyParser(req); err != nil {
			logger.WarnContext(c.UserContext(), "Invalid request body", "error", err)
			return utils.BadRequestResponse(c, "Invalid request body")
		}
		c.Locals(utils.RequestBodyLocal, req)
		return c.Next()
	}
}
