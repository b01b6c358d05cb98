package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("FRONTEND_URL", "https://board.example.com/")
	t.Setenv("JWT_SECRET", "dev-secret")
	t.Setenv("JWT_TTL_HOURS", "0")
	t.Setenv("MAIL_DRIVER", "log")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "https://board.example.com", cfg.App.FrontendURL)
	assert.Equal(t, "http://localhost:9090/api/google-callback", cfg.Google.RedirectURL)
	assert.Equal(t, 24, cfg.JWT.TTLHours)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "kanban:", cfg.Redis.KeyPrefix)
	assert.True(t, cfg.IsDevelopment())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{JWT: JWTConfig{Secret: "s", TTLHours: 1}, Mail: MailConfig{Driver: "smtp"}}, false},
		{"missing secret", Config{Mail: MailConfig{Driver: "smtp"}}, true},
		{
			"default secret in production",
			Config{App: AppConfig{Env: "production"}, JWT: JWTConfig{Secret: "your-secret-key"}, Mail: MailConfig{Driver: "nats"}},
			true,
		},
		{"unknown mail driver", Config{JWT: JWTConfig{Secret: "s"}, Mail: MailConfig{Driver: "pigeon"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
