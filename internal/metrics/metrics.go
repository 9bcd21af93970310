package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	RequestDuration   *prometheus.HistogramVec
	DeliveriesSaved   *prometheus.CounterVec
	ReportsGenerated  *prometheus.CounterVec
	LoginsTotal       *prometheus.CounterVec
	AggregateDuration prometheus.Histogram
}

// New creates and registers all metrics on the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates and registers all metrics on reg
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "festive_births_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route", "status"}),
		DeliveriesSaved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "festive_births_deliveries_saved_total",
			Help: "Deliveries created or updated, by resulting state",
		}, []string{"operation", "state"}),
		ReportsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "festive_births_reports_generated_total",
			Help: "Reports generated, by kind",
		}, []string{"kind"}),
		LoginsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "festive_births_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		AggregateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "festive_births_dashboard_aggregate_duration_seconds",
			Help:    "Duration of dashboard aggregation including loading",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, route, status string, start time.Time) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
}

// IncrementDeliverySaved records a persisted delivery
func (m *Metrics) IncrementDeliverySaved(operation, state string) {
	if m == nil {
		return
	}
	m.DeliveriesSaved.WithLabelValues(operation, state).Inc()
}

// IncrementReport records a generated report
func (m *Metrics) IncrementReport(kind string) {
	if m == nil {
		return
	}
	m.ReportsGenerated.WithLabelValues(kind).Inc()
}

// IncrementLogin records a login attempt
func (m *Metrics) IncrementLogin(outcome string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(outcome).Inc()
}

// ObserveAggregate records the duration of a dashboard aggregation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveAggregate(start time.Time) {
	if m == nil {
		return
	}
	m.AggregateDuration.Observe(time.Since(start).Seconds())
}
