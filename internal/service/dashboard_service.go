package service

import (
	"context"
	"time"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/dashboard"
	"festive-births-svc/internal/location"
	"festive-births-svc/internal/metrics"
	"festive-births-svc/internal/models/response"
	"festive-births-svc/internal/repository"
	"festive-births-svc/pkg/logger"
)

// DashboardService interface defines dashboard service methods
type DashboardService interface {
	GetDashboard(ctx context.Context, actor access.Actor, filters dashboard.Filters) (*dashboard.Result, error)
	FilterForm(actor access.Actor, sel access.FormSelection) response.FormResponse
}

// dashboardService implements DashboardService interface
type dashboardService struct {
	deliveryRepo repository.DeliveryRepository
	dir          *location.Directory
	reportDates  []string
	region       string
	metrics      *metrics.Metrics
	logger       *logger.Logger
	now          func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	deliveryRepo repository.DeliveryRepository,
	dir *location.Directory,
	reportDates []string,
	region string,
	m *metrics.Metrics,
	logger *logger.Logger,
) DashboardService {
	return &dashboardService{
		deliveryRepo: deliveryRepo,
		dir:          dir,
		reportDates:  reportDates,
		region:       region,
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
}

// GetDashboard aggregates the deliveries the actor may see, narrowed by filters.
// Location filters locked for the actor are replaced with the actor's own assignment.
func (s *dashboardService) GetDashboard(ctx context.Context, actor access.Actor, filters dashboard.Filters) (*dashboard.Result, error) {
	fields := access.DeriveFieldConstraints(actor, s.dir, access.FormReportFilter, access.FormSelection{
		District:          filters.District,
		LocalMunicipality: filters.LocalMunicipality,
	})
	filters.District = lockedValue(fields["district"], filters.District)
	filters.LocalMunicipality = lockedValue(fields["local_municipality"], filters.LocalMunicipality)
	filters.Facility = lockedValue(fields["facility"], filters.Facility)

	scope := access.Resolve(actor)
	deliveries, err := s.deliveryRepo.FindForDashboard(ctx, scope, filters)
	if err != nil {
		s.logger.WithError(err).WithField("scope", scope.Kind.String()).Error("Failed to load dashboard deliveries")
		return nil, err
	}

	start := time.Now()
	result := dashboard.Aggregate(deliveries, filters, s.now(), s.region)
	s.metrics.ObserveAggregate(start)

	s.logger.WithFields(map[string]interface{}{
		"scope":        scope.Kind.String(),
		"deliveries":   len(deliveries),
		"total_births": result.TotalBirths,
	}).Debug("Dashboard aggregated")

	return result, nil
}

// FilterForm describes the report filter form for the actor
func (s *dashboardService) FilterForm(actor access.Actor, sel access.FormSelection) response.FormResponse {
	fields := access.DeriveFieldConstraints(actor, s.dir, access.FormReportFilter, sel)
	fields["report_date"] = access.FieldConstraint{Choices: append([]string(nil), s.reportDates...)}
	return response.FormResponse{Form: access.FormReportFilter, Fields: fields}
}
