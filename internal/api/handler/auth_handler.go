package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Dashulik10/Hostel-Organization/internal/dto"
	"github.com/Dashulik10/Hostel-Organization/internal/service"
	"github.com/Dashulik10/Hostel-Organization/pkg/response"
)

// AuthHandler serves account registration and session endpoints.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates the AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// RegisterStudent creates a student account with its profile.
// POST /api/auth/register-student/
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	user, err := h.authSvc.RegisterStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, user)
}

// RegisterWorker creates a worker account with its profile.
// POST /api/auth/register-worker/
func (h *AuthHandler) RegisterWorker(c *gin.Context) {
	var req dto.RegisterWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	user, err := h.authSvc.RegisterWorker(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, user)
}

// Login issues a token pair.
// POST /api/auth/login/
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	tokens, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, tokens)
}

// Logout revokes the refresh token.
// POST /api/auth/logout/
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		response.Unauthorized(c, 10002, "invalid refresh token")
		return
	}

	response.OK(c, gin.H{"message": "logged out"})
}

// Me returns the calling account.
// GET /api/auth/me/
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), p.UserID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, user)
}

// ChangePassword changes the caller's password.
// PUT /api/auth/password/
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), p.UserID, &req); err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "password changed"})
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		response.BadRequest(c, 10101, "username already taken")
	case errors.Is(err, service.ErrInvalidDateBirth):
		response.BadRequest(c, 10102, "date_birth must be YYYY-MM-DD")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 10103, "invalid username or password")
	case errors.Is(err, service.ErrWrongPassword):
		response.BadRequest(c, 10104, "old password is incorrect")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 10105, "user not found")
	default:
		response.InternalError(c)
	}
}
