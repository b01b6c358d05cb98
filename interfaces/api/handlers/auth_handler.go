package handlers

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/dto"
	"kanban-api/domain/services"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/utils"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	authService  services.AuthService
	userService  services.UserService
	frontendURL  string
	secureCookie bool
}

func NewAuthHandler(authService services.AuthService, userService services.UserService, frontendURL string, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		userService:  userService,
		frontendURL:  strings.TrimSuffix(frontendURL, "/"),
		secureCookie: secureCookie,
	}
}

// Register POST /api/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.RegisterRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	user, err := h.authService.Register(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Registration failed", "email", req.Email, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, dto.UserToUserResponse(user))
}

// Login POST /api/login token อยู่ใน cookie ไม่อยู่ใน body
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	session, err := h.authService.Login(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Login failed", "email", req.Email, "reason", err.Error())
		return utils.ServiceErrorResponse(c, err)
	}

	utils.SetSessionCookie(c, session.Token, session.ExpiresAt, h.secureCookie)
	return utils.SuccessResponse(c, dto.LoginResponse{
		Message: "Login successful",
		User:    *session.User,
	})
}

// Logout POST /api/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	if err := h.authService.Logout(c.UserContext(), user); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	utils.ClearSessionCookie(c, h.secureCookie)
	return utils.MessageResponse(c, "Logged out")
}

// Me GET /api/user
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	profile, err := h.userService.GetUser(c.UserContext(), user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.UserToUserDetailResponse(profile))
}

// ForgotPassword POST /api/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.authService.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.MessageResponse(c, "Password reset email sent")
}

// ResetPassword POST /api/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.authService.ResetPassword(c.UserContext(), &req); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.MessageResponse(c, "Password has been reset")
}

// VerifyEmail POST /api/verify-email
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req dto.VerifyEmailRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.authService.VerifyEmail(c.UserContext(), req.Token); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.MessageResponse(c, "Email verified")
}

// GoogleLogin GET /api/login-google redirect ไปหน้า consent ของ Google
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	ctx := c.UserContext()

	authURL, state, err := h.authService.BeginGoogleLogin(ctx)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	// state ผูกกับ browser ด้วย cookie อีกชั้น
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	logger.InfoContext(ctx, "Redirecting to Google OAuth")
	return c.Redirect(authURL, fiber.StatusTemporaryRedirect)
}

// GoogleCallback GET /api/google-callback
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if errParam := c.Query("error"); errParam != "" {
		logger.WarnContext(ctx, "Google OAuth error", "error", errParam)
		return h.redirectLoginError(c, errParam)
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" {
		return h.redirectLoginError(c, "no_code")
	}

	savedState := c.Cookies(oauthStateCookie)
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.secureCookie,
	})
	if savedState == "" || savedState != state {
		logger.WarnContext(ctx, "OAuth state cookie mismatch")
		return h.redirectLoginError(c, "invalid_state")
	}

	session, err := h.authService.CompleteGoogleLogin(ctx, state, code)
	if err != nil {
		logger.WarnContext(ctx, "Google login failed", "error", err)
		return h.redirectLoginError(c, "google_login_failed")
	}

	utils.SetSessionCookie(c, session.Token, session.ExpiresAt, h.secureCookie)
	return c.Redirect(h.frontendURL+"/dashboard", fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) redirectLoginError(c *fiber.Ctx, reason string) error {
	return c.Redirect(h.frontendURL+"/login?error="+url.QueryEscape(reason), fiber.StatusTemporaryRedirect)
}
