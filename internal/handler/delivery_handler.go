package handler

import (
	"github.com/gin-gonic/gin"

	"festive-births-svc/internal/capture"
	"festive-births-svc/internal/service"
	"festive-births-svc/pkg/logger"
	"festive-births-svc/pkg/utils"
)

// DeliveryHandler handles delivery capture requests
type DeliveryHandler struct {
	deliveryService service.DeliveryService
	logger          *logger.Logger
}

// NewDeliveryHandler creates a new delivery handler
func NewDeliveryHandler(deliveryService service.DeliveryService, logger *logger.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: deliveryService,
		logger:          logger,
	}
}

// List handles GET /api/v1/deliveries
// @Summary List deliveries
// @Description Deliveries visible to the current user, newest first
// @Tags deliveries
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search facility, mother name or surname, birth mode"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(25)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Delivery} "Deliveries retrieved"
// @Router /api/v1/deliveries [get]
func (h *DeliveryHandler) List(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	deliveries, total, err := h.deliveryService.List(c.Request.Context(), currentActor(c), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, h.logger, err, "Failed to list deliveries")
		return
	}

	utils.PaginatedSuccessResponse(c, "Deliveries retrieved successfully", deliveries, page, limit, total)
}

// Form handles GET /api/v1/deliveries/form
// @Summary Delivery form fields
// @Description Choices and locked values of the delivery form for the current user
// @Tags deliveries
// @Produce json
// @Security BearerAuth
// @Param district query string false "Selected district"
// @Param local_municipality query string false "Selected local municipality"
// @Success 200 {object} utils.APIResponse{data=response.FormResponse} "Form retrieved"
// @Router /api/v1/deliveries/form [get]
func (h *DeliveryHandler) Form(c *gin.Context) {
	utils.SuccessResponse(c, "Form retrieved successfully", h.deliveryService.Form(currentActor(c), formSelection(c)))
}

// Get handles GET /api/v1/deliveries/:id
// @Summary Get delivery
// @Tags deliveries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Delivery ID"
// @Success 200 {object} utils.APIResponse{data=models.Delivery} "Delivery retrieved"
// @Failure 404 {object} utils.APIResponse "Delivery not found"
// @Router /api/v1/deliveries/{id} [get]
func (h *DeliveryHandler) Get(c *gin.Context) {
	id, ok := idParam(c, h.logger)
	if !ok {
		return
	}

	delivery, err := h.deliveryService.Get(c.Request.Context(), currentActor(c), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get delivery")
		return
	}
	utils.SuccessResponse(c, "Delivery retrieved successfully", delivery)
}

// Create handles POST /api/v1/deliveries
// @Summary Capture delivery
// @Description Capture a birth or a NIL report with its babies
// @Tags deliveries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body capture.Input true "Delivery"
// @Success 201 {object} utils.APIResponse{data=models.Delivery} "Delivery captured"
// @Failure 400 {object} utils.APIResponse "Validation failed"
// @Failure 403 {object} utils.APIResponse "Read-only account"
// @Router /api/v1/deliveries [post]
func (h *DeliveryHandler) Create(c *gin.Context) {
	var in capture.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	delivery, err := h.deliveryService.Create(c.Request.Context(), currentActor(c), in)
	if err != nil {
		respondError(c, h.logger, err, "Failed to capture delivery")
		return
	}
	utils.CreatedResponse(c, "Delivery captured successfully", delivery)
}

// Update handles PUT /api/v1/deliveries/:id
// @Summary Update delivery
// @Tags deliveries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Delivery ID"
// @Param request body capture.Input true "Delivery"
// @Success 200 {object} utils.APIResponse{data=models.Delivery} "Delivery updated"
// @Failure 400 {object} utils.APIResponse "Validation failed"
// @Failure 404 {object} utils.APIResponse "Delivery not found"
// @Router /api/v1/deliveries/{id} [put]
func (h *DeliveryHandler) Update(c *gin.Context) {
	id, ok := idParam(c, h.logger)
	if !ok {
		return
	}

	var in capture.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	delivery, err := h.deliveryService.Update(c.Request.Context(), currentActor(c), id, in)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update delivery")
		return
	}
	utils.SuccessResponse(c, "Delivery updated successfully", delivery)
}

// Delete handles DELETE /api/v1/deliveries/:id
// @Summary Delete delivery
// @Tags deliveries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Delivery ID"
// @Success 200 {object} utils.APIResponse "Delivery deleted"
// @Failure 404 {object} utils.APIResponse "Delivery not found"
// @Router /api/v1/deliveries/{id} [delete]
func (h *DeliveryHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, h.logger)
	if !ok {
		return
	}

	if err := h.deliveryService.Delete(c.Request.Context(), currentActor(c), id); err != nil {
		respondError(c, h.logger, err, "Failed to delete delivery")
		return
	}
	utils.SuccessResponse(c, "Delivery deleted successfully", nil)
}
