package services

import (
	"context"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/pkg/utils"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.Session, error)
	Logout(ctx context.Context, user *utils.UserContext) error

	// VerifyToken ตรวจ JWT (ลายเซ็น, วันหมดอายุ, revoke) แล้วโหลดผู้ใช้
	VerifyToken(ctx context.Context, token string) (*utils.UserContext, error)

	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error

	// Google OAuth
	GoogleEnabled() bool
	BeginGoogleLogin(ctx context.Context) (authURL, state string, err error)
	CompleteGoogleLogin(ctx context.Context, state, code string) (*dto.Session, error)
}
