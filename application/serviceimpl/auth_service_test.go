package serviceimpl

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/domain/ports"
	"kanban-api/domain/repositories"
	redispkg "kanban-api/infrastructure/redis"
	"kanban-api/pkg/apperror"
)

func TestRegisterVerifyLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, &dto.RegisterRequest{
		Name:     "Somchai",
		Surname:  "Jaidee",
		Email:    "  Somchai@Example.com ",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "somchai@example.com", user.Email)
	assert.False(t, user.EmailVerified)
	assert.NotEqual(t, "password123", user.PasswordHash)

	msg, ok := f.mail.Last(ports.MailVerification)
	require.True(t, ok)
	assert.Equal(t, "somchai@example.com", msg.To)
	require.NotNil(t, user.VerificationToken)
	assert.Contains(t, msg.TextBody, *user.VerificationToken)

	// ยังไม่ยืนยันอีเมล login ไม่ได้
	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "somchai@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	require.NoError(t, f.auth.VerifyEmail(ctx, *user.VerificationToken))
	assert.ErrorIs(t, f.auth.VerifyEmail(ctx, *user.VerificationToken), apperror.ErrInvalidOrExpiredToken)

	session, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "SOMCHAI@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	body, err := json.Marshal(session.User)
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(body)), "password")

	current, err := f.auth.VerifyToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)
	assert.Equal(t, "Somchai Jaidee", current.DisplayName())

	require.NoError(t, f.auth.Logout(ctx, current))
	_, err = f.auth.VerifyToken(ctx, session.Token)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Existing", "dup@example.com")

	_, err := f.auth.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Other",
		Surname:  "Person",
		Email:    "DUP@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, apperror.ErrDuplicateEmail)
}

// staleEmailCheck จำลองคำขอสมัครสองคำขอที่ผ่านการเช็คอีเมลพร้อมกัน
type staleEmailCheck struct {
	repositories.UserRepository
}

func (staleEmailCheck) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

func TestDuplicateUserInsertIsTranslated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "Existing", "race@example.com")

	err := f.users.Create(ctx, &models.User{Name: "Again", Email: "race@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	auth := NewAuthService(staleEmailCheck{f.users}, f.tx, f.notifier, redispkg.NewMemorySessionStore(), nil, AuthConfig{
		JWTSecret: testJWTSecret,
		TokenTTL:  time.Hour,
	})
	_, err = auth.Register(ctx, &dto.RegisterRequest{
		Name:     "Late",
		Surname:  "Comer",
		Email:    "race@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, apperror.ErrDuplicateEmail)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestRegisterRollsBackWhenMailFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mail.Err = errors.New("smtp down")

	req := &dto.RegisterRequest{Name: "Mail", Surname: "Less", Email: "mailless@example.com", Password: "password123"}
	_, err := f.auth.Register(ctx, req)
	require.Error(t, err)

	exists, err := f.users.ExistsByEmail(ctx, "mailless@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	// สมัครใหม่ได้เมื่อส่งอีเมลได้แล้ว
	f.mail.Err = nil
	_, err = f.auth.Register(ctx, req)
	assert.NoError(t, err)
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Nida", "nida@example.com")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "password123"},
		{"wrong password", "nida@example.com", "wrong-password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Login(context.Background(), &dto.LoginRequest{Email: tt.email, Password: tt.password})
			assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
		})
	}
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, &dto.RegisterRequest{Name: "Late", Surname: "Comer", Email: "late@example.com", Password: "password123"})
	require.NoError(t, err)

	impl := f.auth.(*AuthServiceImpl)
	impl.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	assert.ErrorIs(t, f.auth.VerifyEmail(ctx, *user.VerificationToken), apperror.ErrInvalidOrExpiredToken)
	assert.ErrorIs(t, f.auth.VerifyEmail(ctx, "not-a-token"), apperror.ErrInvalidOrExpiredToken)
}

func TestForgotAndResetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "Malee", "malee@example.com")

	assert.ErrorIs(t, f.auth.ForgotPassword(ctx, "ghost@example.com"), apperror.ErrNotFound)

	require.NoError(t, f.auth.ForgotPassword(ctx, "malee@example.com"))
	_, ok := f.mail.Last(ports.MailPasswordReset)
	require.True(t, ok)

	stored, err := f.users.GetByEmail(ctx, "malee@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordResetToken)
	token := *stored.PasswordResetToken

	require.NoError(t, f.auth.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "new-password-1"}))

	// token ใช้ได้ครั้งเดียว
	err = f.auth.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "another-pass"})
	assert.ErrorIs(t, err, apperror.ErrInvalidOrExpiredToken)

	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "malee@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "malee@example.com", Password: "new-password-1"})
	assert.NoError(t, err)
}

func TestGoogleLoginDisabled(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.auth.GoogleEnabled())
	_, _, err := f.auth.BeginGoogleLogin(context.Background())
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
