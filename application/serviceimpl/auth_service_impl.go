package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/domain/ports"
	"kanban-api/domain/repositories"
	"kanban-api/domain/services"
	"kanban-api/pkg/apperror"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/utils"
)

const (
	verificationTokenBytes = 64
	verificationTokenTTL   = 24 * time.Hour
	resetTokenBytes        = 32
	resetTokenTTL          = time.Hour
	oauthStateTTL          = 10 * time.Minute
)

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	tx       repositories.Transactor
	notifier services.NotificationService
	sessions ports.SessionStore
	google   ports.OAuthProvider
	config   AuthConfig
	now      func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tx repositories.Transactor,
	notifier services.NotificationService,
	sessions ports.SessionStore,
	google ports.OAuthProvider,
	config AuthConfig,
) services.AuthService {
	if config.TokenTTL <= 0 {
		config.TokenTTL = 24 * time.Hour
	}
	return &AuthServiceImpl{
		userRepo: userRepo,
		tx:       tx,
		notifier: notifier,
		sessions: sessions,
		google:   google,
		config:   config,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		logger.WarnContext(ctx, "Email already exists", "email", email)
		return nil, apperror.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return nil, apperror.Internal(err)
	}

	token, err := utils.GenerateSecureToken(verificationTokenBytes)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	expires := s.now().Add(verificationTokenTTL)

	user := &models.User{
		Name:                     strings.TrimSpace(req.Name),
		Surname:                  strings.TrimSpace(req.Surname),
		Email:                    email,
		PasswordHash:             string(hashedPassword),
		VerificationToken:        &token,
		VerificationTokenExpires: &expires,
	}

	// ส่งอีเมลไม่สำเร็จ = ยกเลิกการสมัคร ผู้ใช้สมัครใหม่ได้ด้วยอีเมลเดิม
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.ErrDuplicateEmail
			}
			return apperror.Internal(err)
		}
		return s.notifier.SendVerification(ctx, user, token)
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, apperror.Internal(err)
	}

	// user ที่สมัครผ่าน Google ไม่มี password
	if user.PasswordHash == "" {
		return nil, apperror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Invalid password attempt", "user_id", user.ID)
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, apperror.ErrInvalidCredentials.WithMessage("email address has not been verified")
	}

	return s.issueSession(ctx, user)
}

func (s *AuthServiceImpl) issueSession(ctx context.Context, user *models.User) (*dto.Session, error) {
	token, expiresAt, err := utils.GenerateToken(user.ID, user.Email, s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID)
	return &dto.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.UserToUserResponse(user),
	}, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, user *utils.UserContext) error {
	if user == nil || user.Token == "" {
		return nil
	}
	if err := s.sessions.RevokeToken(ctx, user.Token, user.ExpiresAt); err != nil {
		logger.ErrorContext(ctx, "Failed to revoke token", "user_id", user.ID, "error", err)
		return apperror.Internal(err)
	}
	return nil
}

func (s *AuthServiceImpl) VerifyToken(ctx context.Context, token string) (*utils.UserContext, error) {
	claims, err := utils.ParseToken(token, s.config.JWTSecret)
	if err != nil {
		return nil, apperror.ErrUnauthorized.WithMessage("invalid or expired session").Wrap(err)
	}

	revoked, err := s.sessions.IsRevoked(ctx, token)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if revoked {
		return nil, apperror.ErrUnauthorized.WithMessage("session has been revoked")
	}

	userID, err := utils.UserIDFromClaims(claims)
	if err != nil {
		return nil, apperror.ErrUnauthorized.Wrap(err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUnauthorized.WithMessage("user no longer exists")
		}
		return nil, apperror.Internal(err)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return &utils.UserContext{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Surname:      user.Surname,
		IsSuperAdmin: user.IsSuperAdmin,
		Token:        token,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrInvalidOrExpiredToken
		}
		return apperror.Internal(err)
	}
	if user.VerificationTokenExpires == nil || !s.now().Before(*user.VerificationTokenExpires) {
		return apperror.ErrInvalidOrExpiredToken
	}

	user.EmailVerified = true
	user.VerificationToken = nil
	user.VerificationTokenExpires = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperror.Internal(err)
	}

	logger.InfoContext(ctx, "Email verified", "user_id", user.ID)
	return nil
}

func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return repoError(err, "user")
	}

	token, err := utils.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		return apperror.Internal(err)
	}
	expires := s.now().Add(resetTokenTTL)
	user.PasswordResetToken = &token
	user.PasswordResetTokenExpires = &expires

	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperror.Internal(err)
	}
	return s.notifier.SendPasswordReset(ctx, user, token)
}

func (s *AuthServiceImpl) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.GetByPasswordResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrInvalidOrExpiredToken
		}
		return apperror.Internal(err)
	}
	if user.PasswordResetTokenExpires == nil || !s.now().Before(*user.PasswordResetTokenExpires) {
		return apperror.ErrInvalidOrExpiredToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Internal(err)
	}

	user.PasswordHash = string(hashedPassword)
	user.PasswordResetToken = nil
	user.PasswordResetTokenExpires = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperror.Internal(err)
	}

	logger.InfoContext(ctx, "Password reset", "user_id", user.ID)
	return nil
}

func (s *AuthServiceImpl) GoogleEnabled() bool {
	return s.google != nil && s.google.Enabled()
}

func (s *AuthServiceImpl) BeginGoogleLogin(ctx context.Context) (string, string, error) {
	if !s.GoogleEnabled() {
		return "", "", apperror.Validation("google login is not configured")
	}

	state, err := utils.GenerateSecureToken(32)
	if err != nil {
		return "", "", apperror.Internal(err)
	}
	if err := s.sessions.SaveOAuthState(ctx, state, oauthStateTTL); err != nil {
		return "", "", apperror.Internal(err)
	}
	return s.google.AuthCodeURL(state), state, nil
}

func (s *AuthServiceImpl) CompleteGoogleLogin(ctx context.Context, state, code string) (*dto.Session, error) {
	if !s.GoogleEnabled() {
		return nil, apperror.Validation("google login is not configured")
	}

	ok, err := s.sessions.ConsumeOAuthState(ctx, state)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !ok {
		return nil, apperror.ErrUnauthorized.WithMessage("invalid oauth state")
	}

	info, err := s.google.Exchange(ctx, code)
	if err != nil {
		logger.WarnContext(ctx, "Google code exchange failed", "error", err)
		return nil, apperror.ErrUnauthorized.WithMessage("google authentication failed").Wrap(err)
	}

	user, err := s.findOrCreateGoogleUser(ctx, info)
	if err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

func (s *AuthServiceImpl) findOrCreateGoogleUser(ctx context.Context, info *dto.GoogleUserInfo) (*models.User, error) {
	email := normalizeEmail(info.Email)
	googleID := info.ID

	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		changed := false
		if user.GoogleID == nil {
			user.GoogleID = &googleID
			changed = true
		}
		if !user.EmailVerified && info.VerifiedEmail {
			user.EmailVerified = true
			user.VerificationToken = nil
			user.VerificationTokenExpires = nil
			changed = true
		}
		if changed {
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, apperror.Internal(err)
			}
		}
		return user, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperror.Internal(err)
	}

	name := info.GivenName
	if name == "" {
		name = info.Name
	}
	user = &models.User{
		Name:          name,
		Surname:       info.FamilyName,
		Email:         email,
		EmailVerified: true,
		GoogleID:      &googleID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	logger.InfoContext(ctx, "User created from Google login", "user_id", user.ID, "email", user.Email)
	return user, nil
}
