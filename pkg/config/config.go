package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	NATS         NATSConfig // mail outbox (MAIL_DRIVER=nats)
	Redis        RedisConfig
	JWT          JWTConfig
	Log          LogConfig
	Google       GoogleOAuthConfig
	Storage      StorageConfig
	Mail         MailConfig
	Housekeeping HousekeepingConfig
}

type AppConfig struct {
	Name          string
	Port          string
	Env           string
	AllowedOrigin string // origin ของ SPA ที่อนุญาตให้ส่ง cookie
	FrontendURL   string // ใช้สร้างลิงก์ในอีเมลและ redirect หลัง OAuth
}

type DatabaseConfig struct {
	Driver   string // postgres, sqlite
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string // ไฟล์ sqlite (DB_DRIVER=sqlite)
}

// RedisConfig สำหรับ OAuth state และ session ที่ถูก revoke
type RedisConfig struct {
	URL       string // redis://localhost:6379 (ว่าง = ปิด)
	Password  string
	DB        int
	KeyPrefix string // namespace ของทุก key
}

type NATSConfig struct {
	URL            string // nats://localhost:4222
	MailMaxDeliver int    // จำนวนครั้งสูงสุดที่ consumer จะลองส่งอีเมล
}

type JWTConfig struct {
	Secret   string
	TTLHours int
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string // logs/app.log
	MaxSize    int    // MB
	MaxBackups int
	MaxAge     int // วัน
	Compress   bool
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type StorageConfig struct {
	Type     string // local, s3
	BasePath string // สำหรับ local: ./Uploads
	BaseURL  string // URL prefix ของไฟล์ที่ serve แบบ static

	S3 S3Config
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	PublicURL string
}

type MailConfig struct {
	Driver   string // smtp, nats, log
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type HousekeepingConfig struct {
	Cron string
}

func LoadConfig() (*Config, error) {
	// ไม่มีไฟล์ .env ก็ใช้ environment variables แทน
	_ = godotenv.Load()

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))
	logCompress := getEnv("LOG_COMPRESS", "true") == "true"

	jwtTTL, _ := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	mailMaxDeliver, _ := strconv.Atoi(getEnv("NATS_MAIL_MAX_DELIVER", "5"))
	s3UseSSL := getEnv("S3_USE_SSL", "false") == "true"

	port := getEnv("APP_PORT", "8080")

	cfg := &Config{
		App: AppConfig{
			Name:          getEnv("APP_NAME", "Kanban API"),
			Port:          port,
			Env:           getEnv("APP_ENV", "development"),
			AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
			FrontendURL:   strings.TrimSuffix(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "kanban"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			Path:     getEnv("DB_PATH", "kanban.db"),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MailMaxDeliver: mailMaxDeliver,
		},
		Redis: RedisConfig{
			URL:       getEnv("REDIS_URL", ""),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        redisDB,
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "kanban:"),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", "your-secret-key"),
			TTLHours: jwtTTL,
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
		Google: GoogleOAuthConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:"+port+"/api/google-callback"),
		},
		Storage: StorageConfig{
			Type:     getEnv("STORAGE_TYPE", "local"),
			BasePath: getEnv("STORAGE_BASE_PATH", "./Uploads"),
			BaseURL:  getEnv("STORAGE_BASE_URL", "/Uploads"),
			S3: S3Config{
				Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
				AccessKey: getEnv("S3_ACCESS_KEY", "minioadmin"),
				SecretKey: getEnv("S3_SECRET_KEY", "minioadmin"),
				Bucket:    getEnv("S3_BUCKET", "attachments"),
				UseSSL:    s3UseSSL,
				Region:    getEnv("S3_REGION", "us-east-1"),
				PublicURL: getEnv("S3_PUBLIC_URL", ""),
			},
		},
		Mail: MailConfig{
			Driver:   getEnv("MAIL_DRIVER", "smtp"),
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     smtpPort,
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("MAIL_FROM", "no-reply@localhost"),
			FromName: getEnv("MAIL_FROM_NAME", "Kanban"),
		},
		Housekeeping: HousekeepingConfig{
			Cron: getEnv("HOUSEKEEPING_CRON", "0 * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ตรวจค่าที่ห้ามปล่อยเป็น default ใน production
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProduction() && c.JWT.Secret == "your-secret-key" {
		return errors.New("JWT_SECRET must be changed in production")
	}
	if c.JWT.TTLHours <= 0 {
		c.JWT.TTLHours = 24
	}
	switch c.Mail.Driver {
	case "smtp", "nats", "log":
	default:
		return errors.New("MAIL_DRIVER must be one of smtp, nats, log")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// IsDevelopment ตรวจสอบว่าเป็น development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction ตรวจสอบว่าเป็น production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
