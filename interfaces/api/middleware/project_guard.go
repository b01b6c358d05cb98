package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/models"
	"kanban-api/domain/services"
	"kanban-api/pkg/apperror"
	"kanban-api/pkg/utils"
)

// ProjectLocator หา project id ของ request
type ProjectLocator func(c *fiber.Ctx, access services.AccessService) (uint, error)

// RequireProjectRole ใช้ต่อจาก Protected
// roles ว่าง = สมาชิก role ใดก็ได้
func RequireProjectRole(access services.AccessService, locate ProjectLocator, roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := utils.GetUserFromContext(c)
		if err != nil {
			return utils.UnauthorizedResponse(c, "User not authenticated")
		}

		projectID, err := locate(c, access)
		if err != nil {
			return utils.ServiceErrorResponse(c, err)
		}

		if err := access.Authorize(c.UserContext(), user, projectID, roles...); err != nil {
			return utils.ServiceErrorResponse(c, err)
		}

		return c.Next()
	}
}

// ProjectFromParam project id อยู่ใน route param
func ProjectFromParam(name string) ProjectLocator {
	return func(c *fiber.Ctx, _ services.AccessService) (uint, error) {
		return paramID(c.Params(name), name)
	}
}

// ProjectFromQuery project id อยู่ใน query string
func ProjectFromQuery(name string) ProjectLocator {
	return func(c *fiber.Ctx, _ services.AccessService) (uint, error) {
		return paramID(c.Query(name), name)
	}
}

// ProjectFromBody project id มาจาก DTO ที่ DecodeBody[T] decode ไว้แล้ว
func ProjectFromBody[T any](field string, id func(*T) uint) ProjectLocator {
	return func(c *fiber.Ctx, _ services.AccessService) (uint, error) {
		return bodyID(c, field, id)
	}
}

func ColumnFromParam(name string) ProjectLocator {
	return func(c *fiber.Ctx, access services.AccessService) (uint, error) {
		id, err := paramID(c.Params(name), name)
		if err != nil {
			return 0, err
		}
		return access.ProjectOfColumn(c.UserContext(), id)
	}
}

func ColumnFromBody[T any](field string, columnID func(*T) uint) ProjectLocator {
	return func(c *fiber.Ctx, access services.AccessService) (uint, error) {
		id, err := bodyID(c, field, columnID)
		if err != nil {
			return 0, err
		}
		return access.ProjectOfColumn(c.UserContext(), id)
	}
}

func TaskFromParam(name string) ProjectLocator {
	return func(c *fiber.Ctx, access services.AccessService) (uint, error) {
		id, err := paramID(c.Params(name), name)
		if err != nil {
			return 0, err
		}
		return access.ProjectOfTask(c.UserContext(), id)
	}
}

func TaskFromQuery(name string) ProjectLocator {
	return func(c *fiber.Ctx, access services.AccessService) (uint, error) {
		id, err := paramID(c.Query(name), name)
		if err != nil {
			return 0, err
		}
		return access.ProjectOfTask(c.UserContext(), id)
	}
}

func TaskFromBody[T any](field string, taskID func(*T) uint) ProjectLocator {
	return func(c *fiber.Ctx, access services.AccessService) (uint, error) {
		id, err := bodyID(c, field, taskID)
		if err != nil {
			return 0, err
		}
		return access.ProjectOfTask(c.UserContext(), id)
	}
}

// TaskFromForm สำหรับ multipart ที่ handler อ่าน field เดียวกันด้วย FormValue
func TaskFromForm(field string) ProjectLocator {
	return func(c *fiber.Ctx, access services.AccessService) (uint, error) {
		id, err := paramID(c.FormValue(field), field)
		if err != nil {
			return 0, err
		}
		return access.ProjectOfTask(c.UserContext(), id)
	}
}

func SubtaskFromParam(name string) ProjectLocator {
	return func(c *fiber.Ctx, access services.AccessService) (uint, error) {
		id, err := paramID(c.Params(name), name)
		if err != nil {
			return 0, err
		}
		return access.ProjectOfSubtask(c.UserContext(), id)
	}
}

func AttachmentFromParam(name string) ProjectLocator {
	return func(c *fiber.Ctx, access services.AccessService) (uint, error) {
		id, err := paramID(c.Params(name), name)
		if err != nil {
			return 0, err
		}
		return access.ProjectOfAttachment(c.UserContext(), id)
	}
}

func paramID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation("invalid " + name)
	}
	return uint(id), nil
}

// bodyID อ่าน id จาก DTO ตัวเดียวกับที่ handler จะใช้ ไม่ parse body ซ้ำ
func bodyID[T any](c *fiber.Ctx, field string, id func(*T) uint) (uint, error) {
	req, ok := utils.DecodedBody[T](c)
	if !ok {
		return 0, apperror.Internal(fmt.Errorf("%s: request body was not decoded before the guard", field))
	}
	v := id(req)
	if v == 0 {
		return 0, apperror.Validation(field + " is required")
	}
	return v, nil
}
