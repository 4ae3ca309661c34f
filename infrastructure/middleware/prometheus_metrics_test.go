package middleware

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-tally/internal/ports"
)

func newTestMetrics(t *testing.T) (*PrometheusMetrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewPrometheusMetrics(reg), reg
}

// TestNewPrometheusMetrics verifies that every metric vector is created and
// registered with the supplied registry only.
func TestNewPrometheusMetrics(t *testing.T) {
	pm, reg := newTestMetrics(t)

	assert.NotNil(t, pm.analysisLatency)
	assert.NotNil(t, pm.operationCounter)
	assert.NotNil(t, pm.replayCounter)
	assert.NotNil(t, pm.skippedReferences)
	assert.NotNil(t, pm.reportGauges)
	assert.NotNil(t, pm.distributions)

	var _ ports.MetricsCollector = pm

	// A second instance on a fresh registry must not collide.
	require.NotPanics(t, func() { NewPrometheusMetrics(prometheus.NewRegistry()) })

	// Vectors without observations are not exported yet.
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Empty(t, families)
}

func TestPrometheusMetrics_RecordLatency(t *testing.T) {
	tests := []struct {
		name       string
		labels     map[string]string
		wantStatus string
	}{
		{"explicit status", map[string]string{"status": "error"}, "error"},
		{"nil labels", nil, "success"},
		{"empty status", map[string]string{"status": ""}, "success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm, _ := newTestMetrics(t)
			pm.RecordLatency(OperationAnalyze, 250*time.Millisecond, tt.labels)

			// Looking up the expected series must not create a second one.
			pm.analysisLatency.WithLabelValues(OperationAnalyze, tt.wantStatus)
			assert.Equal(t, 1, testutil.CollectAndCount(pm.analysisLatency))
		})
	}
}

func TestPrometheusMetrics_RecordCounter(t *testing.T) {
	pm, _ := newTestMetrics(t)

	pm.RecordCounter(MetricRecordsProcessed, 10, nil)
	pm.RecordCounter(MetricRecordsProcessed, 5, nil)
	pm.RecordCounter(MetricItemsProcessed, 42, nil)
	pm.RecordCounter(MetricReferencesSkipped, 1, map[string]string{"reference": "seller"})
	pm.RecordCounter(MetricReferencesSkipped, 2, map[string]string{"reference": "product"})
	pm.RecordCounter(MetricReferencesSkipped, 1, nil)
	pm.RecordCounter(MetricAnalyses, 1, nil)
	pm.RecordCounter(MetricAnalyses, 1, map[string]string{"status": "error"})

	assert.Equal(t, 15.0, testutil.ToFloat64(pm.replayCounter.WithLabelValues("records")))
	assert.Equal(t, 42.0, testutil.ToFloat64(pm.replayCounter.WithLabelValues("items")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.skippedReferences.WithLabelValues("seller")))
	assert.Equal(t, 2.0, testutil.ToFloat64(pm.skippedReferences.WithLabelValues("product")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.skippedReferences.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.operationCounter.WithLabelValues(MetricAnalyses, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.operationCounter.WithLabelValues(MetricAnalyses, "error")))
}

func TestPrometheusMetrics_RecordGauge(t *testing.T) {
	pm, reg := newTestMetrics(t)

	pm.RecordGauge(MetricSellersRanked, 6, nil)
	pm.RecordGauge(MetricRevenueTotal, 2629.82, nil)
	pm.RecordGauge(MetricRevenueTotal, 100, nil)

	assert.Equal(t, 6.0, testutil.ToFloat64(pm.reportGauges.WithLabelValues(MetricSellersRanked)))
	assert.Equal(t, 100.0, testutil.ToFloat64(pm.reportGauges.WithLabelValues(MetricRevenueTotal)), "gauges keep the last value")

	expected := `
# HELP tally_report_state Figures of the most recent report.
# TYPE tally_report_state gauge
tally_report_state{metric="revenue_total"} 100
tally_report_state{metric="sellers_ranked"} 6
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "tally_report_state"))
}

func TestPrometheusMetrics_RecordHistogram(t *testing.T) {
	pm, _ := newTestMetrics(t)

	for _, bonus := range []float64{58.72, 29.09, 11.48, 0.84, 0.84, 0} {
		pm.RecordHistogram(MetricSellerBonus, bonus, nil)
	}
	pm.RecordHistogram("basket_size", 3, nil)

	assert.Equal(t, 2, testutil.CollectAndCount(pm.distributions))
}
