package handlers

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/dto"
	"kanban-api/domain/services"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/utils"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects GET /api/projects super admin เห็นทุกโปรเจกต์
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	projects, err := h.projectService.ListProjects(c.UserContext(), user)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	out := make([]*dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, dto.ProjectToProjectResponse(p))
	}
	return utils.SuccessResponse(c, out)
}

// CreateProject POST /api/projects
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := currentUser(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	var req dto.CreateProjectRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	project, err := h.projectService.CreateProject(ctx, user.ID, &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Project created", "project_id", project.ID, "owner_id", user.ID)
	return utils.CreatedResponse(c, dto.ProjectToProjectResponse(project))
}

// UserProjects GET /api/projects/user-projects
func (h *ProjectHandler) UserProjects(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	projects, err := h.projectService.UserProjects(c.UserContext(), user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, projects)
}

func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	project, err := h.projectService.GetProject(c.UserContext(), id)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.ProjectToProjectResponse(project))
}

func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	var req dto.UpdateProjectRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	project, err := h.projectService.UpdateProject(c.UserContext(), id, &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.ProjectToProjectResponse(project))
}

// DeleteProject ลบ column task subtask และไฟล์แนบทั้งหมดของโปรเจกต์
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	if err := h.projectService.DeleteProject(ctx, id); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Project deleted", "project_id", id)
	return utils.MessageResponse(c, "Project deleted")
}
