package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kanban-api/application/serviceimpl"
	"kanban-api/domain/models"
	"kanban-api/infrastructure/mail"
	"kanban-api/infrastructure/postgres"
	redispkg "kanban-api/infrastructure/redis"
	"kanban-api/infrastructure/storage"
	"kanban-api/interfaces/api/handlers"
	"kanban-api/interfaces/api/middleware"
	"kanban-api/interfaces/api/routes"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type idOnly struct {
	ID uint `json:"id"`
}

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
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

	store, err := storage.NewLocalStorage(storage.LocalStorageConfig{BasePath: t.TempDir(), BaseURL: "/Uploads"})
	require.NoError(t, err)

	notifier := serviceimpl.NewNotificationService(mail.NewRecordingSender(), "Kanban", "http://localhost:3000")
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

	h := handlers.NewHandlers(&handlers.Services{
		AuthService: serviceimpl.NewAuthService(userRepo, tx, notifier, redispkg.NewMemorySessionStore(), nil, serviceimpl.AuthConfig{
			JWTSecret: "routes-secret",
			TokenTTL:  time.Hour,
		}),
		UserService:       serviceimpl.NewUserService(userRepo),
		ProjectService:    serviceimpl.NewProjectService(projectRepo, memberRepo, attachmentRepo, tx, store),
		MembershipService: serviceimpl.NewMembershipService(projectRepo, memberRepo, invitationRepo, userRepo, tx, notifier),
		AccessService:     serviceimpl.NewAccessService(projectRepo, memberRepo, columnRepo, taskRepo, subtaskRepo, attachmentRepo),
		ColumnService:     serviceimpl.NewColumnService(projectRepo, columnRepo, attachmentRepo, tx, store),
		TaskService: serviceimpl.NewTaskService(serviceimpl.TaskServiceDeps{
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
		}),
		SubtaskService:    serviceimpl.NewSubtaskService(taskRepo, subtaskRepo),
		AttachmentService: serviceimpl.NewAttachmentService(taskRepo, attachmentRepo, store),
		HealthChecks: map[string]handlers.HealthCheck{
			"database": func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		},
		AppName:     "Kanban API",
		FrontendURL: "http://localhost:3000",
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		BodyLimit:    routes.MaxRequestBodySize,
	})
	routes.SetupRoutes(app, h, routes.Options{})

	return &testServer{app: app, db: db}
}

func (s *testServer) do(t *testing.T, req *http.Request, cookie *http.Cookie) (int, envelope, []byte) {
	t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	_ = json.Unmarshal(body, &env)
	return resp.StatusCode, env, body
}

func (s *testServer) send(t *testing.T, method, path string, payload any, cookie *http.Cookie) (int, envelope) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	status, env, _ := s.do(t, req, cookie)
	return status, env
}

func (s *testServer) sendRaw(t *testing.T, method, path, raw string, cookie *http.Cookie) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	status, env, _ := s.do(t, req, cookie)
	return status, env
}

func (s *testServer) upload(t *testing.T, cookie *http.Cookie, taskID uint, name, contentType string, content []byte) (int, envelope) {
	t.Helper()

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	require.NoError(t, mw.WriteField("taskId", fmt.Sprint(taskID)))
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, name))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/attachment/upload", &form)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	status, env, _ := s.do(t, req, cookie)
	return status, env
}

// board สร้าง project ที่มี column และ task อย่างละหนึ่ง คืน id ทั้งสาม
func (s *testServer) board(t *testing.T, cookie *http.Cookie, title string) (projectID, columnID, taskID uint) {
	t.Helper()

	status, env := s.send(t, http.MethodPost, "/api/projects", map[string]string{"title": title}, cookie)
	require.Equal(t, http.StatusCreated, status)
	projectID = decodeID(t, env)

	status, env = s.send(t, http.MethodPost, fmt.Sprintf("/api/project/%d/columns", projectID), map[string]string{"name": "To do"}, cookie)
	require.Equal(t, http.StatusCreated, status)
	columnID = decodeID(t, env)

	status, env = s.send(t, http.MethodPost, "/api/task", map[string]any{"columnId": columnID, "title": "First"}, cookie)
	require.Equal(t, http.StatusCreated, status)
	taskID = decodeID(t, env)
	return projectID, columnID, taskID
}

// signUp สมัคร ยืนยันอีเมล แล้ว login คืน cookie ของ session
func (s *testServer) signUp(t *testing.T, name, email string) *http.Cookie {
	t.Helper()

	status, _ := s.send(t, http.MethodPost, "/api/register", map[string]string{
		"name": name, "surname": "Tester", "email": email, "password": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var user models.User
	require.NoError(t, s.db.Where("email = ?", email).First(&user).Error)
	require.NotNil(t, user.VerificationToken)

	status, _ = s.send(t, http.MethodPost, "/api/verify-email", map[string]string{"token": *user.VerificationToken}, nil)
	require.Equal(t, http.StatusOK, status)

	raw, err := json.Marshal(map[string]string{"email": email, "password": "password123"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == "jwt" {
			assert.True(t, c.HttpOnly)
			return &http.Cookie{Name: c.Name, Value: c.Value}
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func decodeID(t *testing.T, env envelope) uint {
	t.Helper()
	var out idOnly
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotZero(t, out.ID)
	return out.ID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	status, _, body := s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil), nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","app":"Kanban API","services":{"database":"up"}}`, string(body))
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/user"},
		{http.MethodGet, "/api/projects"},
		{http.MethodPost, "/api/logout"},
		{http.MethodGet, "/api/project/1/columns"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			status, env := s.send(t, tt.method, tt.path, nil, nil)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.False(t, env.Success)
		})
	}
}

func TestBoardFlow(t *testing.T) {
	s := newTestServer(t)
	owner := s.signUp(t, "Pim", "pim@example.com")
	outsider := s.signUp(t, "Nok", "nok@example.com")

	status, env := s.send(t, http.MethodGet, "/api/user", nil, owner)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "pim@example.com")
	assert.NotContains(t, string(env.Data), "password")

	status, env = s.send(t, http.MethodPost, "/api/projects", map[string]string{"title": "Website Redesign"}, owner)
	require.Equal(t, http.StatusCreated, status)
	projectID := decodeID(t, env)

	columnsPath := fmt.Sprintf("/api/project/%d/columns", projectID)
	status, env = s.send(t, http.MethodPost, columnsPath, map[string]string{"name": "To do"}, owner)
	require.Equal(t, http.StatusCreated, status)
	columnID := decodeID(t, env)

	t.Run("guards", func(t *testing.T) {
		status, env := s.send(t, http.MethodGet, columnsPath, nil, outsider)
		assert.Equal(t, http.StatusForbidden, status)
		assert.False(t, env.Success)

		status, _ = s.send(t, http.MethodGet, "/api/project/99999/columns", nil, owner)
		assert.Equal(t, http.StatusNotFound, status)

		status, _ = s.send(t, http.MethodPost, "/api/task", map[string]any{"columnId": columnID, "title": "Sneaky"}, outsider)
		assert.Equal(t, http.StatusForbidden, status)
	})

	status, env = s.send(t, http.MethodPost, "/api/task", map[string]any{
		"columnId": columnID,
		"title":    "Draft homepage",
		"priority": "High",
	}, owner)
	require.Equal(t, http.StatusCreated, status)
	taskID := decodeID(t, env)

	content := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 256)...)
	status, env = s.upload(t, owner, taskID, "mockup.png", "image/png", content)
	require.Equal(t, http.StatusCreated, status)
	attachmentID := decodeID(t, env)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/attachment/download-attachment/%d", attachmentID), nil)
	status, _, body := s.do(t, req, owner)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, content, body)

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/attachment/download-attachment/%d", attachmentID), nil)
	status, _, _ = s.do(t, req, outsider)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.send(t, http.MethodPost, "/api/logout", nil, owner)
	require.Equal(t, http.StatusOK, status)

	// token เดิมถูก revoke แล้ว
	status, _ = s.send(t, http.MethodGet, "/api/user", nil, owner)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginRejectsBadInput(t *testing.T) {
	s := newTestServer(t)
	s.signUp(t, "Pim", "pim@example.com")

	tests := []struct {
		name    string
		payload map[string]string
		want    int
	}{
		{"wrong password", map[string]string{"email": "pim@example.com", "password": "nope-nope"}, http.StatusUnauthorized},
		{"unknown email", map[string]string{"email": "ghost@example.com", "password": "password123"}, http.StatusUnauthorized},
		{"invalid email", map[string]string{"email": "not-an-email", "password": "password123"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := s.send(t, http.MethodPost, "/api/login", tt.payload, nil)
			assert.Equal(t, tt.want, status)
			assert.False(t, env.Success)
		})
	}
}

func TestBodyIDsAreAuthorizedAsDecoded(t *testing.T) {
	s := newTestServer(t)
	victim := s.signUp(t, "Pim", "pim@example.com")
	attacker := s.signUp(t, "Eve", "eve@example.com")

	victimProject, victimColumn, victimTask := s.board(t, victim, "Victim board")
	ownProject, ownColumn, ownTask := s.board(t, attacker, "Own board")

	// encoding/json จับคู่ key แบบไม่สนตัวพิมพ์และใช้ค่าสุดท้าย
	tests := []struct {
		name string
		path string
		body string
	}{
		{
			"invite into another project",
			"/api/projectusers/invite",
			fmt.Sprintf(`{"projectId":%d,"ProjectId":%d,"email":"eve@example.com","role":"Admin"}`, ownProject, victimProject),
		},
		{
			"create task in another column",
			"/api/task",
			fmt.Sprintf(`{"columnId":%d,"ColumnId":%d,"title":"pwned"}`, ownColumn, victimColumn),
		},
		{
			"assign on another task",
			"/api/taskassignee/update-assignees",
			fmt.Sprintf(`{"taskId":%d,"TaskId":%d,"userIds":[]}`, ownTask, victimTask),
		},
		{
			"add subtask to another task",
			"/api/subtasks",
			fmt.Sprintf(`{"taskId":%d,"TaskId":%d,"title":"pwned"}`, ownTask, victimTask),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := s.sendRaw(t, http.MethodPost, tt.path, tt.body, attacker)
			assert.Equal(t, http.StatusForbidden, status)
			assert.False(t, env.Success)
		})
	}

	var count int64
	require.NoError(t, s.db.Model(&models.ProjectInvitation{}).Where("project_id = ?", victimProject).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, s.db.Model(&models.Task{}).Where("column_id = ? AND title = ?", victimColumn, "pwned").Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, s.db.Model(&models.Subtask{}).Where("task_id = ?", victimTask).Count(&count).Error)
	assert.Zero(t, count)

	// ค่าที่ผ่าน guard คือค่าที่ handler ใช้
	status, _ := s.sendRaw(t, http.MethodPost, "/api/projectusers/invite",
		fmt.Sprintf(`{"ProjectId":%d,"projectId":%d,"email":"friend@example.com","role":"Member"}`, victimProject, ownProject), attacker)
	require.Equal(t, http.StatusOK, status)

	var invitation models.ProjectInvitation
	require.NoError(t, s.db.Where("email = ?", "friend@example.com").First(&invitation).Error)
	assert.Equal(t, ownProject, invitation.ProjectID)
}

func TestUploadOverAttachmentLimit(t *testing.T) {
	s := newTestServer(t)
	owner := s.signUp(t, "Pim", "pim@example.com")
	_, _, taskID := s.board(t, owner, "Docs")

	content := make([]byte, 11<<20)
	copy(content, "%PDF-1.4\n")

	status, env := s.upload(t, owner, taskID, "spec.pdf", "application/pdf", content)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FILE_TOO_LARGE", env.Error.Code)

	var count int64
	require.NoError(t, s.db.Model(&models.Attachment{}).Count(&count).Error)
	assert.Zero(t, count)
}
