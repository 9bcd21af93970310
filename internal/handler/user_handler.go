package handler

import (
	"github.com/gin-gonic/gin"

	"festive-births-svc/internal/export"
	"festive-births-svc/internal/service"
	"festive-births-svc/pkg/logger"
	"festive-births-svc/pkg/utils"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService service.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// List handles GET /api/v1/users
// @Summary List users
// @Description Users managed by the current account. Admins see their own district.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search name, persal number, district or facility"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(25)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.UserDetail} "Users retrieved"
// @Failure 403 {object} utils.APIResponse "Not a user manager"
// @Router /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	users, total, err := h.userService.List(c.Request.Context(), currentActor(c), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, h.logger, err, "Failed to list users")
		return
	}
	utils.PaginatedSuccessResponse(c, "Users retrieved successfully", users, page, limit, total)
}

// Form handles GET /api/v1/users/form
// @Summary User form fields
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param district query string false "Selected district"
// @Param local_municipality query string false "Selected local municipality"
// @Success 200 {object} utils.APIResponse{data=response.FormResponse} "Form retrieved"
// @Router /api/v1/users/form [get]
func (h *UserHandler) Form(c *gin.Context) {
	utils.SuccessResponse(c, "Form retrieved successfully", h.userService.Form(currentActor(c), formSelection(c)))
}

// Active handles GET /api/v1/users/active
// @Summary Active users
// @Description Users seen in the last five minutes
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]response.ActiveUserResponse} "Active users retrieved"
// @Router /api/v1/users/active [get]
func (h *UserHandler) Active(c *gin.Context) {
	users, err := h.userService.ActiveUsers(c.Request.Context(), currentActor(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to get active users")
		return
	}
	utils.SuccessResponse(c, "Active users retrieved successfully", users)
}

// Export handles GET /api/v1/users/export
// @Summary Export users
// @Tags users
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "user_list.xlsx"
// @Failure 403 {object} utils.APIResponse "Superuser access required"
// @Router /api/v1/users/export [get]
func (h *UserHandler) Export(c *gin.Context) {
	data, filename, err := h.userService.ExportUsers(c.Request.Context(), currentActor(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to export users")
		return
	}
	sendFile(c, data, filename, export.ExcelContentType)
}

// Get handles GET /api/v1/users/:id
// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} utils.APIResponse{data=models.UserDetail} "User retrieved"
// @Failure 404 {object} utils.APIResponse "User not found"
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := idParam(c, h.logger)
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), currentActor(c), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get user")
		return
	}
	utils.SuccessResponse(c, "User retrieved successfully", user)
}

// Create handles POST /api/v1/users
// @Summary Create user
// @Description New accounts start on the temporary default password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.UserInput true "User"
// @Success 201 {object} utils.APIResponse{data=models.UserDetail} "User created"
// @Failure 400 {object} utils.APIResponse "Validation failed"
// @Router /api/v1/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var in service.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), currentActor(c), in)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create user")
		return
	}
	utils.CreatedResponse(c, "User created successfully", user)
}

// Update handles PUT /api/v1/users/:id
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body service.UserInput true "User"
// @Success 200 {object} utils.APIResponse{data=models.UserDetail} "User updated"
// @Failure 400 {object} utils.APIResponse "Validation failed"
// @Failure 404 {object} utils.APIResponse "User not found"
// @Router /api/v1/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c, h.logger)
	if !ok {
		return
	}

	var in service.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), currentActor(c), id, in)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update user")
		return
	}
	utils.SuccessResponse(c, "User updated successfully", user)
}

// Delete handles DELETE /api/v1/users/:id
// @Summary Delete user
// @Description Deliveries captured by the user are kept without a capturer
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} utils.APIResponse "User deleted"
// @Failure 404 {object} utils.APIResponse "User not found"
// @Router /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, h.logger)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), currentActor(c), id); err != nil {
		respondError(c, h.logger, err, "Failed to delete user")
		return
	}
	utils.SuccessResponse(c, "User deleted successfully", nil)
}
