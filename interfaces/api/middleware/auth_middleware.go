package middleware

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/services"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/utils"
)

// Protected ตรวจ session จาก cookie "jwt" (หรือ Authorization: Bearer) แล้วเก็บผู้ใช้ไว้ใน locals
func Protected(auth services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := utils.ExtractSessionToken(c)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Missing session token")
		}

		userCtx, err := auth.VerifyToken(c.UserContext(), token)
		if err != nil {
			logger.WarnContext(c.UserContext(), "Token validation failed", "path", c.Path(), "error", err)
			return utils.ServiceErrorResponse(c, err)
		}

		c.Locals("user", userCtx)
		c.SetUserContext(logger.ContextWithUserID(c.UserContext(), userCtx.ID))

		return c.Next()
	}
}

// SuperAdminOnly ใช้ต่อจาก Protected
func SuperAdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := utils.GetUserFromContext(c)
		if err != nil {
			return utils.UnauthorizedResponse(c, "User not authenticated")
		}
		if !user.IsSuperAdmin {
			return utils.ForbiddenResponse(c, "Super admin access required")
		}
		return c.Next()
	}
}
