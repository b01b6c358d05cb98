package handlers

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/dto"
	"kanban-api/domain/services"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/utils"
)

type MembershipHandler struct {
	membershipService services.MembershipService
}

func NewMembershipHandler(membershipService services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// InviteUser POST /api/projectusers/invite
// token ถูกส่งทางอีเมลเท่านั้น ไม่คืนใน response
func (h *MembershipHandler) InviteUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := currentUser(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	var req dto.InviteUserRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	invitation, err := h.membershipService.InviteUser(ctx, user.ID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Invite failed", "project_id", req.ProjectID, "email", req.Email, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Invitation sent", "project_id", invitation.ProjectID, "email", invitation.Email)
	return utils.MessageResponse(c, "Invitation sent to "+invitation.Email)
}

// ConfirmInvite POST /api/projectusers/confirm-invite
func (h *MembershipHandler) ConfirmInvite(c *fiber.Ctx) error {
	var req dto.ConfirmInviteRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	member, err := h.membershipService.ConfirmInvite(c.UserContext(), &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.RoleResponse{
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Role:      string(member.Role),
	})
}

// RemoveUser DELETE /api/projectusers/:projectId/remove-user/:userId
func (h *MembershipHandler) RemoveUser(c *fiber.Ctx) error {
	projectID, err := paramID(c, "projectId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	userID, err := paramID(c, "userId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	if err := h.membershipService.RemoveUser(c.UserContext(), projectID, userID); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.MessageResponse(c, "User removed from project")
}

// UpdateRole PUT /api/projectusers/:projectId/update-role/:userId
func (h *MembershipHandler) UpdateRole(c *fiber.Ctx) error {
	projectID, err := paramID(c, "projectId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	userID, err := paramID(c, "userId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	var req dto.UpdateRoleRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	member, err := h.membershipService.UpdateRole(c.UserContext(), projectID, userID, req.Role)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.RoleResponse{
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Role:      string(member.Role),
	})
}

// GetRole GET /api/projectusers/role?projectId=&userId=
// ไม่ส่ง userId มาจะใช้ผู้เรียกเอง
func (h *MembershipHandler) GetRole(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	projectID, err := queryID(c, "projectId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	userID := user.ID
	if c.Query("userId") != "" {
		if userID, err = queryID(c, "userId"); err != nil {
			return utils.ServiceErrorResponse(c, err)
		}
	}

	role, err := h.membershipService.GetRole(c.UserContext(), user, projectID, userID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.RoleResponse{
		ProjectID: projectID,
		UserID:    userID,
		Role:      string(role),
	})
}
