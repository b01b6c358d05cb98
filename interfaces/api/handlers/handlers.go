package handlers

import (
	"kanban-api/domain/ports"
	"kanban-api/domain/services"
	"kanban-api/pkg/scheduler"
)

// Services contains all the services needed for handlers
type Services struct {
	AuthService         services.AuthService
	UserService         services.UserService
	ProjectService      services.ProjectService
	MembershipService   services.MembershipService
	AccessService       services.AccessService
	ColumnService       services.ColumnService
	TaskService         services.TaskService
	SubtaskService      services.SubtaskService
	AttachmentService   services.AttachmentService
	HousekeepingService services.HousekeepingService
	MailOutbox          ports.OutboxStatusPort // nil เมื่อไม่ได้ส่งเมลผ่าน NATS
	Scheduler           scheduler.JobScheduler
	HealthChecks        map[string]HealthCheck
	AppName             string
	FrontendURL         string
	SecureCookie        bool
}

// Handlers contains all HTTP handlers
type Handlers struct {
	AuthHandler       *AuthHandler
	UserHandler       *UserHandler
	ProjectHandler    *ProjectHandler
	MembershipHandler *MembershipHandler
	ColumnHandler     *ColumnHandler
	TaskHandler       *TaskHandler
	SubtaskHandler    *SubtaskHandler
	AttachmentHandler *AttachmentHandler
	MonitoringHandler *MonitoringHandler

	// routes ใช้สร้าง middleware Protected / RequireProjectRole
	AuthService   services.AuthService
	AccessService services.AccessService
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler:       NewAuthHandler(services.AuthService, services.UserService, services.FrontendURL, services.SecureCookie),
		UserHandler:       NewUserHandler(services.UserService),
		ProjectHandler:    NewProjectHandler(services.ProjectService),
		MembershipHandler: NewMembershipHandler(services.MembershipService),
		ColumnHandler:     NewColumnHandler(services.ColumnService),
		TaskHandler:       NewTaskHandler(services.TaskService),
		SubtaskHandler:    NewSubtaskHandler(services.SubtaskService),
		AttachmentHandler: NewAttachmentHandler(services.AttachmentService),
		MonitoringHandler: NewMonitoringHandler(services.AppName, services.HealthChecks, services.MailOutbox, services.HousekeepingService, services.Scheduler),
		AuthService:       services.AuthService,
		AccessService:     services.AccessService,
	}
}
