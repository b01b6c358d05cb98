package handlers

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/dto"
	"kanban-api/domain/services"
	"kanban-api/pkg/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers GET /api/users (super admin)
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	users, err := h.userService.ListUsers(c.UserContext(), user)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	out := make([]*dto.UserDetailResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserToUserDetailResponse(u))
	}
	return utils.SuccessResponse(c, out)
}

// Exists GET /api/users/exists?email=
func (h *UserHandler) Exists(c *fiber.Ctx) error {
	email := c.Query("email")
	if err := utils.ValidateVar(email, "required,email"); err != nil {
		return utils.ValidationErrorResponse(c, map[string]string{"email": "must be a valid email address"})
	}

	exists, err := h.userService.EmailExists(c.UserContext(), email)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.UserExistsResponse{Exists: exists})
}

// GetUser GET /api/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	user, err := h.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.UserToUserResponse(user))
}

// UpdateUser PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	var req dto.UpdateUserRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	user, err := h.userService.UpdateUser(c.UserContext(), actor, id, &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.UserToUserResponse(user))
}

// DeleteUser DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	if err := h.userService.DeleteUser(c.UserContext(), actor, id); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.MessageResponse(c, "User deleted")
}
