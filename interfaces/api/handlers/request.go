package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"kanban-api/pkg/apperror"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/utils"
)

// bindAndValidate parse body แล้วตรวจ validate tag
// ถ้า middleware.DecodeBody decode ไว้แล้วจะใช้ค่านั้น ไม่ parse ซ้ำ
// คืน false เมื่อส่ง error response ไปแล้ว ให้ handler return err ที่ได้ทันที
func bindAndValidate[T any](c *fiber.Ctx, req *T) (bool, error) {
	ctx := c.UserContext()

	if decoded, ok := utils.DecodedBody[T](c); ok {
		*req = *decoded
	} else if err := c.BodyParser(req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return false, utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(req); err != nil {
		errs := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errs)
		return false, utils.ValidationErrorResponse(c, errs)
	}
	return true, nil
}

func parseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation("invalid " + name)
	}
	return uint(id), nil
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	return parseID(c.Params(name), name)
}

func queryID(c *fiber.Ctx, name string) (uint, error) {
	return parseID(c.Query(name), name)
}

// currentUser ใช้หลัง middleware.Protected เท่านั้น
func currentUser(c *fiber.Ctx) (*utils.UserContext, error) {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return nil, apperror.ErrUnauthorized.Wrap(err)
	}
	return user, nil
}
