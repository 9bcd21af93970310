package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"festive-births-svc/internal/dashboard"
	"festive-births-svc/internal/export"
	"festive-births-svc/internal/repository"
	"festive-births-svc/internal/service"
	"festive-births-svc/pkg/logger"
	"festive-births-svc/pkg/utils"
)

// ReportHandler handles report and export requests
type ReportHandler struct {
	reportService    service.ReportService
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService service.ReportService, dashboardService service.DashboardService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{
		reportService:    reportService,
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// FilterForm handles GET /api/v1/reports/filter-form
// @Summary Report filter form
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param district query string false "Selected district"
// @Param local_municipality query string false "Selected local municipality"
// @Success 200 {object} utils.APIResponse{data=response.FormResponse} "Form retrieved"
// @Router /api/v1/reports/filter-form [get]
func (h *ReportHandler) FilterForm(c *gin.Context) {
	utils.SuccessResponse(c, "Form retrieved successfully", h.dashboardService.FilterForm(currentActor(c), formSelection(c)))
}

// DashboardPDF handles GET /api/v1/reports/dashboard-pdf
// @Summary Dashboard PDF
// @Description Download the filtered dashboard as a PDF document
// @Tags reports
// @Produce application/pdf
// @Security BearerAuth
// @Param report_date query string false "Report date"
// @Param district query string false "District"
// @Param local_municipality query string false "Local municipality"
// @Param facility query string false "Facility"
// @Success 200 {file} file "dashboard_report.pdf"
// @Failure 500 {object} utils.APIResponse "Stylesheet missing or rendering failed"
// @Router /api/v1/reports/dashboard-pdf [get]
func (h *ReportHandler) DashboardPDF(c *gin.Context) {
	var filters dashboard.Filters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.BadRequestResponse(c, "Invalid filters", err)
		return
	}

	data, filename, err := h.reportService.DashboardPDF(c.Request.Context(), currentActor(c), filters)
	if err != nil {
		respondError(c, h.logger, err, "Failed to generate PDF")
		return
	}
	sendFile(c, data, filename, export.PDFContentType)
}

// ExportExcel handles GET /api/v1/reports/export-excel
// @Summary Full data export
// @Description Download every delivery in scope, one row per baby
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "festive_births_full_report.xlsx"
// @Router /api/v1/reports/export-excel [get]
func (h *ReportHandler) ExportExcel(c *gin.Context) {
	data, filename, err := h.reportService.FullReport(c.Request.Context(), currentActor(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to export report")
		return
	}
	sendFile(c, data, filename, export.ExcelContentType)
}

// AbnormalWeights handles GET /api/v1/reports/abnormal-weights
// @Summary Abnormal birth weights
// @Description Babies under 2500g or from 4000g with their weight category
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]response.AbnormalWeightRow} "Report retrieved"
// @Router /api/v1/reports/abnormal-weights [get]
func (h *ReportHandler) AbnormalWeights(c *gin.Context) {
	rows, err := h.reportService.AbnormalWeights(c.Request.Context(), currentActor(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to get abnormal weights")
		return
	}
	utils.SuccessResponse(c, "Abnormal weight report retrieved successfully", rows)
}

// NilReports handles GET /api/v1/reports/nil
// @Summary NIL reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "From capture date (YYYY-MM-DD)"
// @Param end_date query string false "To capture date inclusive (YYYY-MM-DD)"
// @Param district query string false "District"
// @Param local_municipality query string false "Local municipality"
// @Param facility query string false "Facility"
// @Success 200 {object} utils.APIResponse{data=[]response.NilReportRow} "Report retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid dates"
// @Router /api/v1/reports/nil [get]
func (h *ReportHandler) NilReports(c *gin.Context) {
	filter := repository.NilReportFilter{
		District:          c.Query("district"),
		LocalMunicipality: c.Query("local_municipality"),
		Facility:          c.Query("facility"),
	}

	fields := map[string][]string{}
	for name, target := range map[string]**time.Time{"start_date": &filter.StartDate, "end_date": &filter.EndDate} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(utils.DateLayout, raw)
		if err != nil {
			fields[name] = append(fields[name], "Enter a valid date.")
			continue
		}
		*target = &t
	}
	if len(fields) > 0 {
		utils.ValidationErrorResponse(c, "Validation failed", fields)
		return
	}

	rows, err := h.reportService.NilReports(c.Request.Context(), currentActor(c), filter)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get NIL reports")
		return
	}
	utils.SuccessResponse(c, "NIL reports retrieved successfully", rows)
}
