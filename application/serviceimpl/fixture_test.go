package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/domain/ports"
	"kanban-api/domain/repositories"
	"kanban-api/domain/services"
	"kanban-api/infrastructure/mail"
	"kanban-api/infrastructure/postgres"
	redispkg "kanban-api/infrastructure/redis"
	"kanban-api/infrastructure/storage"
	"kanban-api/pkg/utils"
)

const testJWTSecret = "test-secret"

// fixture ต่อ service ทั้งหมดเข้ากับ sqlite ในหน่วยความจำ
type fixture struct {
	db       *gorm.DB
	mail     *mail.RecordingSender
	storage  ports.StoragePort
	dir      string
	tx       repositories.Transactor
	notifier services.NotificationService

	users       repositories.UserRepository
	projects    repositories.ProjectRepository
	members     repositories.ProjectUserRepository
	invitations repositories.InvitationRepository
	tasks       repositories.TaskRepository
	attachments repositories.AttachmentRepository

	auth       services.AuthService
	user       services.UserService
	project    services.ProjectService
	membership services.MembershipService
	access     services.AccessService
	column     services.ColumnService
	task       services.TaskService
	subtask    services.SubtaskService
	attachment services.AttachmentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Driver: "sqlite",
		Path:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	dir := t.TempDir()
	store, err := storage.NewLocalStorage(storage.LocalStorageConfig{BasePath: dir, BaseURL: "/Uploads"})
	require.NoError(t, err)

	sender := mail.NewRecordingSender()
	notifier := NewNotificationService(sender, "Kanban", "http://localhost:3000")
	tx := postgres.NewTransactor(db)

	userRepo := postgres.NewUserRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	memberRepo := postgres.NewProjectUserRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	columnRepo := postgres.NewColumnRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	assigneeRepo := postgres.NewTaskAssigneeRepository(db)
	subtaskRepo := postgres.NewSubtaskRepository(db)
	attachmentRepo := postgres.NewAttachmentRepository(db)

	f := &fixture{
		db:          db,
		mail:        sender,
		storage:     store,
		dir:         dir,
		tx:          tx,
		notifier:    notifier,
		users:       userRepo,
		projects:    projectRepo,
		members:     memberRepo,
		invitations: invitationRepo,
		tasks:       taskRepo,
		attachments: attachmentRepo,
	}

	f.auth = NewAuthService(userRepo, tx, notifier, redispkg.NewMemorySessionStore(), nil, AuthConfig{
		JWTSecret: testJWTSecret,
		TokenTTL:  time.Hour,
	})
	f.user = NewUserService(userRepo)
	f.project = NewProjectService(projectRepo, memberRepo, attachmentRepo, tx, store)
	f.membership = NewMembershipService(projectRepo, memberRepo, invitationRepo, userRepo, tx, notifier)
	f.access = NewAccessService(projectRepo, memberRepo, columnRepo, taskRepo, subtaskRepo, attachmentRepo)
	f.column = NewColumnService(projectRepo, columnRepo, attachmentRepo, tx, store)
	f.task = NewTaskService(TaskServiceDeps{
		ProjectRepo:    projectRepo,
		MemberRepo:     memberRepo,
		ColumnRepo:     columnRepo,
		TaskRepo:       taskRepo,
		AssigneeRepo:   assigneeRepo,
		AttachmentRepo: attachmentRepo,
		UserRepo:       userRepo,
		Tx:             tx,
		Storage:        store,
		Notifier:       notifier,
	})
	f.subtask = NewSubtaskService(taskRepo, subtaskRepo)
	f.attachment = NewAttachmentService(taskRepo, attachmentRepo, store)
	return f
}

// createUser สร้างผู้ใช้ที่ยืนยันอีเมลแล้ว รหัสผ่านคือ "password123"
func (f *fixture) createUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:          name,
		Surname:       "Tester",
		Email:         email,
		PasswordHash:  string(hash),
		EmailVerified: true,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *fixture) createProject(t *testing.T, owner *models.User, title string) *models.Project {
	t.Helper()
	project, err := f.project.CreateProject(context.Background(), owner.ID, &dto.CreateProjectRequest{Title: title})
	require.NoError(t, err)
	return project
}

func (f *fixture) addMember(t *testing.T, project *models.Project, user *models.User, role models.Role) {
	t.Helper()
	require.NoError(t, f.members.Create(context.Background(), &models.ProjectUser{
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      role,
	}))
}

func (f *fixture) createColumn(t *testing.T, project *models.Project, name string) *models.Column {
	t.Helper()
	column, err := f.column.AddColumn(context.Background(), project.ID, &dto.CreateColumnRequest{Name: name})
	require.NoError(t, err)
	return column
}

func (f *fixture) createTask(t *testing.T, owner *models.User, column *models.Column, title string) *models.Task {
	t.Helper()
	task, err := f.task.CreateTask(context.Background(), owner.ID, &dto.CreateTaskRequest{ColumnID: column.ID, Title: title})
	require.NoError(t, err)
	return task
}

func actorOf(u *models.User) *utils.UserContext {
	return &utils.UserContext{ID: u.ID, Email: u.Email, Name: u.Name, Surname: u.Surname, IsSuperAdmin: u.IsSuperAdmin}
}

func ptr[T any](v T) *T { return &v }
