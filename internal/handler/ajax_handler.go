package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"festive-births-svc/internal/location"
	"festive-births-svc/internal/models/response"
)

// AjaxHandler answers the cascading form lookups
type AjaxHandler struct {
	dir *location.Directory
}

// NewAjaxHandler creates a new lookup handler
func NewAjaxHandler(dir *location.Directory) *AjaxHandler {
	return &AjaxHandler{dir: dir}
}

// LoadOptions handles GET /api/v1/ajax/load-options
// @Summary Cascading options
// @Description Municipalities of a district or facilities of a municipality. Unknown ids give an empty list.
// @Tags ajax
// @Produce json
// @Security BearerAuth
// @Param type query string true "district or municipality"
// @Param id query string true "Parent name"
// @Success 200 {object} response.OptionsResponse
// @Router /api/v1/ajax/load-options [get]
func (h *AjaxHandler) LoadOptions(c *gin.Context) {
	c.JSON(http.StatusOK, response.OptionsResponse{
		Options: h.dir.Children(c.Query("type"), c.Query("id")),
	})
}

// GetFacilityType handles GET /api/v1/ajax/get-facility-type
// @Summary Facility type
// @Tags ajax
// @Produce json
// @Security BearerAuth
// @Param facility_name query string true "Facility name"
// @Success 200 {object} response.FacilityTypeResponse
// @Failure 400 {object} map[string]string "Facility name missing"
// @Failure 404 {object} map[string]string "Facility not mapped"
// @Router /api/v1/ajax/get-facility-type [get]
func (h *AjaxHandler) GetFacilityType(c *gin.Context) {
	name := c.Query("facility_name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Facility name not provided"})
		return
	}

	facilityType, ok := h.dir.FacilityType(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facility type not found"})
		return
	}
	c.JSON(http.StatusOK, response.FacilityTypeResponse{FacilityType: facilityType})
}
