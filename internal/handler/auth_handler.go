package handler

import (
	"github.com/gin-gonic/gin"

	"festive-births-svc/internal/middleware"
	"festive-births-svc/internal/service"
	"festive-births-svc/pkg/logger"
	"festive-births-svc/pkg/utils"
)

// AuthHandler handles login, logout and password changes
type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// LoginRequest is the login body. Username is the persal number.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"12345678"`
	Password string `json:"password" binding:"required" example:"Password1"`
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Description Authenticate with persal number and password and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=response.LoginResponse} "Logged in"
// @Failure 400 {object} utils.APIResponse "Invalid request body"
// @Failure 401 {object} utils.APIResponse "Invalid credentials"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err, "Failed to log in")
		return
	}

	utils.SuccessResponse(c, "Logged in successfully", resp)
}

// Logout handles POST /api/v1/auth/logout
// @Summary Log out
// @Description Revoke the current bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse "Logged out"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.ClaimsFrom(c)); err != nil {
		respondError(c, h.logger, err, "Failed to log out")
		return
	}
	utils.SuccessResponse(c, "Logged out successfully", nil)
}

// ChangePassword handles POST /api/v1/auth/password-change
// @Summary Change password
// @Description Replace the current password. Required for accounts on the temporary password.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PasswordChangeInput true "Passwords"
// @Success 200 {object} utils.APIResponse "Password changed"
// @Failure 400 {object} utils.APIResponse "Validation failed"
// @Router /api/v1/auth/password-change [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req service.PasswordChangeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), currentActor(c), req); err != nil {
		respondError(c, h.logger, err, "Failed to change password")
		return
	}
	utils.SuccessResponse(c, "Password changed successfully", nil)
}

// Me handles GET /api/v1/auth/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=models.UserDetail} "Current user"
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	detail, err := h.authService.Me(c.Request.Context(), currentActor(c).UserID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get current user")
		return
	}
	utils.SuccessResponse(c, "Current user retrieved successfully", detail)
}
