package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.IncrementDeliverySaved("create", "LIVE_BIRTH")
	m.IncrementDeliverySaved("create", "LIVE_BIRTH")
	m.IncrementReport("full_report")
	m.IncrementLogin("success")
	m.ObserveRequest("GET", "/api/v1/dashboard", "200", time.Now())
	m.ObserveAggregate(time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DeliveriesSaved.WithLabelValues("create", "LIVE_BIRTH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsGenerated.WithLabelValues("full_report")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues("success")))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementDeliverySaved("create", "NIL")
		m.IncrementReport("pdf")
		m.IncrementLogin("failure")
		m.ObserveRequest("GET", "/", "200", time.Now())
		m.ObserveAggregate(time.Now())
	})
}
