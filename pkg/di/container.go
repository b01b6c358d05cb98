package di

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"kanban-api/application/serviceimpl"
	"kanban-api/domain/ports"
	"kanban-api/domain/repositories"
	"kanban-api/domain/services"
	"kanban-api/infrastructure/mail"
	natspkg "kanban-api/infrastructure/nats"
	"kanban-api/infrastructure/oauth"
	"kanban-api/infrastructure/postgres"
	redispkg "kanban-api/infrastructure/redis"
	"kanban-api/infrastructure/storage"
	"kanban-api/interfaces/api/handlers"
	"kanban-api/pkg/config"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/metrics"
	"kanban-api/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	Tx             repositories.Transactor
	RedisClient    *redispkg.Client        // optional
	NATSClient     *natspkg.Client         // optional (MAIL_DRIVER=nats)
	MailSubscriber *natspkg.MailSubscriber // ส่งอีเมลจาก outbox ผ่าน SMTP
	Storage        ports.StoragePort
	Sessions       ports.SessionStore
	MailSender     ports.MailSender
	Google         ports.OAuthProvider
	Scheduler      scheduler.JobScheduler
	Metrics        *metrics.Metrics

	// Repositories
	UserRepository         repositories.UserRepository
	ProjectRepository      repositories.ProjectRepository
	ProjectUserRepository  repositories.ProjectUserRepository
	InvitationRepository   repositories.InvitationRepository
	ColumnRepository       repositories.ColumnRepository
	TaskRepository         repositories.TaskRepository
	TaskAssigneeRepository repositories.TaskAssigneeRepository
	SubtaskRepository      repositories.SubtaskRepository
	AttachmentRepository   repositories.AttachmentRepository

	// Services
	NotificationService services.NotificationService
	AuthService         services.AuthService
	UserService         services.UserService
	ProjectService      services.ProjectService
	MembershipService   services.MembershipService
	AccessService       services.AccessService
	ColumnService       services.ColumnService
	TaskService         services.TaskService
	SubtaskService      services.SubtaskService
	AttachmentService   services.AttachmentService
	HousekeepingService *serviceimpl.HousekeepingService

	consumerCancel context.CancelFunc
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	c.Metrics = metrics.New()

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initMail(); err != nil {
		return err
	}

	c.initRepositories()
	c.initServices()

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	// Database
	dbConfig := postgres.DatabaseConfig{
		Driver:   c.Config.Database.Driver,
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
		Path:     c.Config.Database.Path,
		Debug:    c.Config.IsDevelopment() && c.Config.Log.Level == "debug",
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	c.Tx = postgres.NewTransactor(db)
	logger.Info("Database connected", "driver", dbConfig.Driver, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Redis (optional - ใช้ memory store แทนเมื่อไม่มี)
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (using in-memory session store)", "error", err)
		} else {
			c.RedisClient = redisClient
			logger.Info("Redis client initialized", "url", c.Config.Redis.URL)
		}
	}
	if c.RedisClient != nil {
		c.Sessions = redispkg.NewSessionStore(c.RedisClient)
	} else {
		c.Sessions = redispkg.NewMemorySessionStore()
	}

	// Storage
	if err := c.initStorage(); err != nil {
		return err
	}

	c.Google = oauth.NewGoogleProvider(c.Config.Google)
	if !c.Google.Enabled() {
		logger.Warn("Google OAuth disabled (GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET not configured)")
	}

	return nil
}

func (c *Container) initStorage() error {
	switch c.Config.Storage.Type {
	case "s3":
		s3Storage, err := storage.NewS3Storage(storage.S3StorageConfig{
			Endpoint:  c.Config.Storage.S3.Endpoint,
			AccessKey: c.Config.Storage.S3.AccessKey,
			SecretKey: c.Config.Storage.S3.SecretKey,
			Bucket:    c.Config.Storage.S3.Bucket,
			UseSSL:    c.Config.Storage.S3.UseSSL,
			Region:    c.Config.Storage.S3.Region,
			PublicURL: c.Config.Storage.S3.PublicURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		c.Storage = s3Storage
		logger.Info("S3 storage initialized", "endpoint", c.Config.Storage.S3.Endpoint, "bucket", c.Config.Storage.S3.Bucket)
	case "local", "":
		localStorage, err := storage.NewLocalStorage(storage.LocalStorageConfig{
			BasePath: c.Config.Storage.BasePath,
			BaseURL:  c.Config.Storage.BaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		c.Storage = localStorage
		logger.Info("Local storage initialized", "path", c.Config.Storage.BasePath)
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Config.Storage.Type)
	}
	return nil
}

// initMail เลือก transport ของอีเมล
// nats: request เขียนลง JetStream แล้ว consumer ในโปรเซสเดียวกันส่งผ่าน SMTP
func (c *Container) initMail() error {
	smtpSender := mail.WithMetrics(mail.NewSMTPSender(mail.SMTPConfig{
		Host:     c.Config.Mail.Host,
		Port:     c.Config.Mail.Port,
		Username: c.Config.Mail.Username,
		Password: c.Config.Mail.Password,
		From:     c.Config.Mail.From,
		FromName: c.Config.Mail.FromName,
	}), c.Metrics)

	switch c.Config.Mail.Driver {
	case "log":
		c.MailSender = mail.WithMetrics(mail.NewLogSender(), c.Metrics)
	case "nats":
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{URL: c.Config.NATS.URL})
		if err != nil {
			logger.Warn("NATS client initialization failed (sending mail directly over SMTP)", "error", err)
			c.MailSender = smtpSender
			break
		}
		c.NATSClient = natsClient
		c.MailSender = natspkg.NewMailPublisher(natsClient)

		ctx, cancel := context.WithCancel(context.Background())
		c.consumerCancel = cancel
		c.MailSubscriber = natspkg.NewMailSubscriber(natsClient, smtpSender, c.Config.NATS.MailMaxDeliver)
		if err := c.MailSubscriber.Start(ctx); err != nil {
			cancel()
			return fmt.Errorf("failed to start mail consumer: %w", err)
		}
		logger.Info("NATS mail outbox initialized", "url", c.Config.NATS.URL)
	default:
		c.MailSender = smtpSender
	}

	logger.Info("Mail sender initialized", "driver", c.MailSender.Name())
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.ProjectRepository = postgres.NewProjectRepository(c.DB)
	c.ProjectUserRepository = postgres.NewProjectUserRepository(c.DB)
	c.InvitationRepository = postgres.NewInvitationRepository(c.DB)
	c.ColumnRepository = postgres.NewColumnRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	c.TaskAssigneeRepository = postgres.NewTaskAssigneeRepository(c.DB)
	c.SubtaskRepository = postgres.NewSubtaskRepository(c.DB)
	c.AttachmentRepository = postgres.NewAttachmentRepository(c.DB)
	logger.Info("Repositories initialized")
}

func (c *Container) initServices() {
	c.NotificationService = serviceimpl.NewNotificationService(c.MailSender, c.Config.App.Name, c.Config.App.FrontendURL)

	c.AuthService = serviceimpl.NewAuthService(
		c.UserRepository,
		c.Tx,
		c.NotificationService,
		c.Sessions,
		c.Google,
		serviceimpl.AuthConfig{
			JWTSecret: c.Config.JWT.Secret,
			TokenTTL:  time.Duration(c.Config.JWT.TTLHours) * time.Hour,
		},
	)
	c.UserService = serviceimpl.NewUserService(c.UserRepository)
	c.ProjectService = serviceimpl.NewProjectService(c.ProjectRepository, c.ProjectUserRepository, c.AttachmentRepository, c.Tx, c.Storage)
	c.MembershipService = serviceimpl.NewMembershipService(
		c.ProjectRepository,
		c.ProjectUserRepository,
		c.InvitationRepository,
		c.UserRepository,
		c.Tx,
		c.NotificationService,
	)
	c.AccessService = serviceimpl.NewAccessService(
		c.ProjectRepository,
		c.ProjectUserRepository,
		c.ColumnRepository,
		c.TaskRepository,
		c.SubtaskRepository,
		c.AttachmentRepository,
	)
	c.ColumnService = serviceimpl.NewColumnService(c.ProjectRepository, c.ColumnRepository, c.AttachmentRepository, c.Tx, c.Storage)
	c.TaskService = serviceimpl.NewTaskService(serviceimpl.TaskServiceDeps{
		ProjectRepo:    c.ProjectRepository,
		MemberRepo:     c.ProjectUserRepository,
		ColumnRepo:     c.ColumnRepository,
		TaskRepo:       c.TaskRepository,
		AssigneeRepo:   c.TaskAssigneeRepository,
		AttachmentRepo: c.AttachmentRepository,
		UserRepo:       c.UserRepository,
		Tx:             c.Tx,
		Storage:        c.Storage,
		Notifier:       c.NotificationService,
	})
	c.SubtaskService = serviceimpl.NewSubtaskService(c.TaskRepository, c.SubtaskRepository)
	c.AttachmentService = serviceimpl.NewAttachmentService(c.TaskRepository, c.AttachmentRepository, c.Storage)
	logger.Info("Services initialized")
}

func (c *Container) initScheduler() error {
	c.Scheduler = scheduler.NewJobScheduler(5 * time.Minute)
	c.HousekeepingService = serviceimpl.NewHousekeepingService(
		serviceimpl.HousekeepingConfig{Cron: c.Config.Housekeeping.Cron},
		c.InvitationRepository,
		c.UserRepository,
		c.Scheduler,
		c.Metrics,
	)

	if err := c.HousekeepingService.RegisterCleanupJob(); err != nil {
		return fmt.Errorf("failed to register housekeeping job: %w", err)
	}

	c.Scheduler.Start()
	return nil
}

// Cleanup ปิดทุกอย่างตามลำดับ: scheduler, consumer, NATS, Redis, DB
func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.Scheduler != nil && c.Scheduler.IsRunning() {
		c.Scheduler.Stop()
	}

	if c.MailSubscriber != nil {
		c.MailSubscriber.Stop()
		logger.Info("Mail consumer stopped")
	}
	if c.consumerCancel != nil {
		c.consumerCancel()
	}

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		} else {
			logger.Info("NATS connection closed")
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// healthChecks dependency ที่ /health ตรวจ
func (c *Container) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.RedisClient != nil {
		checks["redis"] = c.RedisClient.Ping
	}
	if c.NATSClient != nil {
		checks["nats"] = func(context.Context) error { return c.NATSClient.Ping() }
	}
	return checks
}

func (c *Container) GetHandlerServices() *handlers.Services {
	svc := &handlers.Services{
		AuthService:         c.AuthService,
		UserService:         c.UserService,
		ProjectService:      c.ProjectService,
		MembershipService:   c.MembershipService,
		AccessService:       c.AccessService,
		ColumnService:       c.ColumnService,
		TaskService:         c.TaskService,
		SubtaskService:      c.SubtaskService,
		AttachmentService:   c.AttachmentService,
		HousekeepingService: c.HousekeepingService,
		Scheduler:           c.Scheduler,
		HealthChecks:        c.healthChecks(),
		AppName:             c.Config.App.Name,
		FrontendURL:         c.Config.App.FrontendURL,
		SecureCookie:        c.Config.IsProduction(),
	}
	// กัน typed nil ใน interface
	if c.NATSClient != nil {
		svc.MailOutbox = c.NATSClient
	}
	return svc
}

// UploadsDir path ที่ /Uploads serve ได้ (เฉพาะ local storage)
func (c *Container) UploadsDir() string {
	if c.Config.Storage.Type == "s3" {
		return ""
	}
	return c.Config.Storage.BasePath
}
