package handler

import (
	"github.com/gin-gonic/gin"

	"festive-births-svc/internal/dashboard"
	"festive-births-svc/internal/service"
	"festive-births-svc/pkg/logger"
	"festive-births-svc/pkg/utils"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetDashboard handles GET /api/v1/dashboard
// @Summary Get dashboard
// @Description Birth statistics for the current user's scope, narrowed progressively by report date and location
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param report_date query string false "Report date"
// @Param district query string false "District"
// @Param local_municipality query string false "Local municipality"
// @Param facility query string false "Facility"
// @Success 200 {object} utils.APIResponse{data=dashboard.Result} "Dashboard retrieved"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	var filters dashboard.Filters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.BadRequestResponse(c, "Invalid filters", err)
		return
	}

	result, err := h.dashboardService.GetDashboard(c.Request.Context(), currentActor(c), filters)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get dashboard")
		return
	}

	utils.SuccessResponse(c, "Dashboard retrieved successfully", result)
}
