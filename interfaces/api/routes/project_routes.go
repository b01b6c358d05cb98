package routes

import (
	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/interfaces/api/handlers"
	"kanban-api/interfaces/api/middleware"
)

func SetupProjectRoutes(api fiber.Router, h *handlers.Handlers) {
	member := middleware.RequireProjectRole(h.AccessService, middleware.ProjectFromParam("id"))
	admin := middleware.RequireProjectRole(h.AccessService, middleware.ProjectFromParam("id"), models.RoleAdmin)

	projects := api.Group("/projects")
	projects.Use(middleware.Protected(h.AuthService))
	projects.Get("/", h.ProjectHandler.ListProjects)
	projects.Post("/", h.ProjectHandler.CreateProject)
	projects.Get("/user-projects", h.ProjectHandler.UserProjects)
	projects.Get("/:id", member, h.ProjectHandler.GetProject)
	projects.Put("/:id", admin, h.ProjectHandler.UpdateProject)
	projects.Delete("/:id", admin, h.ProjectHandler.DeleteProject)
}

func SetupMembershipRoutes(api fiber.Router, h *handlers.Handlers) {
	admin := middleware.RequireProjectRole(h.AccessService, middleware.ProjectFromParam("projectId"), models.RoleAdmin)

	pu := api.Group("/projectusers")
	pu.Use(middleware.Protected(h.AuthService))
	pu.Post("/invite",
		middleware.DecodeBody[dto.InviteUserRequest](),
		middleware.RequireProjectRole(h.AccessService,
			middleware.ProjectFromBody("projectId", func(r *dto.InviteUserRequest) uint { return r.ProjectID }),
			models.RoleAdmin),
		h.MembershipHandler.InviteUser)
	// ผู้ถูกเชิญยังไม่เป็นสมาชิก ใช้ token ยืนยันแทน role
	pu.Post("/confirm-invite", h.MembershipHandler.ConfirmInvite)
	pu.Delete("/:projectId/remove-user/:userId", admin, h.MembershipHandler.RemoveUser)
	pu.Put("/:projectId/update-role/:userId", admin, h.MembershipHandler.UpdateRole)
	pu.Get("/role", h.MembershipHandler.GetRole)
}
