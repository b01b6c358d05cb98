package dto

type InviteUserRequest struct {
	ProjectID uint   `json:"projectId" validate:"required,gt=0"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Role      string `json:"role" validate:"required,project_role"`
}

type ConfirmInviteRequest struct {
	ProjectID uint   `json:"projectId" validate:"required,gt=0"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Token     string `json:"token" validate:"required"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,project_role"`
}

type RoleResponse struct {
	ProjectID uint   `json:"projectId"`
	UserID    uint   `json:"userId"`
	Role      string `json:"role"`
}
