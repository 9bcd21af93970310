package service

import (
	"context"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/dashboard"
	"festive-births-svc/internal/export"
	"festive-births-svc/internal/metrics"
	"festive-births-svc/internal/models/response"
	"festive-births-svc/internal/repository"
	"festive-births-svc/pkg/logger"
)

// ReportService interface defines report and export methods
type ReportService interface {
	DashboardPDF(ctx context.Context, actor access.Actor, filters dashboard.Filters) ([]byte, string, error)
	FullReport(ctx context.Context, actor access.Actor) ([]byte, string, error)
	NilReports(ctx context.Context, actor access.Actor, filter repository.NilReportFilter) ([]response.NilReportRow, error)
	AbnormalWeights(ctx context.Context, actor access.Actor) ([]response.AbnormalWeightRow, error)
}

// reportService implements ReportService interface
type reportService struct {
	deliveryRepo   repository.DeliveryRepository
	dashboard      DashboardService
	stylesheetPath string
	metrics        *metrics.Metrics
	logger         *logger.Logger
}

// NewReportService creates a new report service
func NewReportService(
	deliveryRepo repository.DeliveryRepository,
	dashboardService DashboardService,
	stylesheetPath string,
	m *metrics.Metrics,
	logger *logger.Logger,
) ReportService {
	return &reportService{
		deliveryRepo:   deliveryRepo,
		dashboard:      dashboardService,
		stylesheetPath: stylesheetPath,
		metrics:        m,
		logger:         logger,
	}
}

// DashboardPDF renders the filtered dashboard. The stylesheet is read on every call.
func (s *reportService) DashboardPDF(ctx context.Context, actor access.Actor, filters dashboard.Filters) ([]byte, string, error) {
	style, err := export.LoadStylesheet(s.stylesheetPath)
	if err != nil {
		s.logger.WithError(err).WithField("path", s.stylesheetPath).Error("PDF stylesheet unavailable")
		return nil, "", err
	}

	result, err := s.dashboard.GetDashboard(ctx, actor, filters)
	if err != nil {
		return nil, "", err
	}

	data, filename, err := export.DashboardPDF(result, actor.Username, style)
	if err != nil {
		s.logger.WithError(err).Error("Failed to render dashboard PDF")
		return nil, "", err
	}

	s.metrics.IncrementReport("dashboard_pdf")
	return data, filename, nil
}

// FullReport builds the full data spreadsheet for the actor's scope
func (s *reportService) FullReport(ctx context.Context, actor access.Actor) ([]byte, string, error) {
	scope := access.Resolve(actor)
	deliveries, err := s.deliveryRepo.FindForExport(ctx, scope)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load deliveries for export")
		return nil, "", err
	}

	data, filename, err := export.FullReport(deliveries)
	if err != nil {
		s.logger.WithError(err).Error("Failed to build full report")
		return nil, "", err
	}

	s.metrics.IncrementReport("full_excel")
	s.logger.WithFields(map[string]interface{}{
		"scope":      scope.Kind.String(),
		"deliveries": len(deliveries),
	}).Info("Full report exported")
	return data, filename, nil
}

// NilReports lists NIL submissions in the actor's scope
func (s *reportService) NilReports(ctx context.Context, actor access.Actor, filter repository.NilReportFilter) ([]response.NilReportRow, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, NewValidationError("end_date", "End date must not be before start date.")
	}

	deliveries, err := s.deliveryRepo.FindNilReports(ctx, access.Resolve(actor), filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load NIL reports")
		return nil, err
	}

	rows := make([]response.NilReportRow, 0, len(deliveries))
	for i := range deliveries {
		d := &deliveries[i]
		rows = append(rows, response.NilReportRow{
			ID:                d.ID,
			DocumentID:        d.DocumentID,
			ReportDate:        d.ReportDate,
			TimeSlot:          d.TimeSlot,
			District:          d.District,
			LocalMunicipality: d.LocalMunicipality,
			Facility:          d.Facility,
			CapturedBy:        d.CapturedByUsername(),
			Timestamp:         d.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	s.metrics.IncrementReport("nil")
	return rows, nil
}

// AbnormalWeights lists babies outside the normal weight range with their category
func (s *reportService) AbnormalWeights(ctx context.Context, actor access.Actor) ([]response.AbnormalWeightRow, error) {
	rows, err := s.deliveryRepo.FindAbnormalWeights(ctx, access.Resolve(actor), export.NormalWeightMin, export.NormalWeightMax)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load abnormal weights")
		return nil, err
	}

	for i := range rows {
		rows[i].Category = export.WeightCategory(rows[i].Weight)
	}
	if rows == nil {
		rows = []response.AbnormalWeightRow{}
	}

	s.metrics.IncrementReport("abnormal_weight")
	return rows, nil
}
