// Package middleware provides cross-cutting concerns for the sales analyzer:
// metrics, tracing and logging around analysis runs.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-tally/internal/ports"
)

// Metric names understood by PrometheusMetrics. Names outside this list are
// still recorded, under the generic operation and state vectors.
const (
	MetricAnalyses          = "analyses"
	MetricRecordsProcessed  = "records_processed"
	MetricItemsProcessed    = "items_processed"
	MetricReferencesSkipped = "references_skipped"
	MetricSellersRanked     = "sellers_ranked"
	MetricRevenueTotal      = "revenue_total"
	MetricProfitTotal       = "profit_total"
	MetricBonusTotal        = "bonus_total"
	MetricSellerBonus       = "seller_bonus"
)

const metricsNamespace = "tally"

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It tracks analysis latency, replay throughput, skipped
// references and the monetary totals of the last report.
type PrometheusMetrics struct {
	analysisLatency   *prometheus.HistogramVec
	operationCounter  *prometheus.CounterVec
	replayCounter     *prometheus.CounterVec
	skippedReferences *prometheus.CounterVec
	reportGauges      *prometheus.GaugeVec
	distributions     *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance whose metrics
// are registered with reg. A nil reg registers with the default registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		analysisLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "analysis_duration_seconds",
				Help:      "Execution time of sales analyses.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "status"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "operations_total",
				Help:      "Total number of analyzer operations by outcome.",
			},
			[]string{"operation", "status"},
		),
		replayCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "replayed_total",
				Help:      "Purchase records and items accumulated into seller stats.",
			},
			[]string{"kind"},
		),
		skippedReferences: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "skipped_references_total",
				Help:      "Purchase records and items skipped because they reference unknown sellers or products.",
			},
			[]string{"reference"},
		),
		reportGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "report_state",
				Help:      "Figures of the most recent report.",
			},
			[]string{"metric"},
		),
		distributions: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "value_distribution",
				Help:      "Distribution of per-seller values such as bonuses.",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.analysisLatency.WithLabelValues(operation, status(labels)).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case MetricRecordsProcessed:
		pm.replayCounter.WithLabelValues("records").Add(value)
	case MetricItemsProcessed:
		pm.replayCounter.WithLabelValues("items").Add(value)
	case MetricReferencesSkipped:
		pm.skippedReferences.WithLabelValues(labelOr(labels, "reference", "unknown")).Add(value)
	default:
		pm.operationCounter.WithLabelValues(metric, status(labels)).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, _ map[string]string,
) {
	pm.reportGauges.WithLabelValues(metric).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, _ map[string]string,
) {
	pm.distributions.WithLabelValues(metric).Observe(value)
}

func status(labels map[string]string) string {
	return labelOr(labels, "status", "success")
}

func labelOr(labels map[string]string, key, fallback string) string {
	if v := labels[key]; v != "" {
		return v
	}
	return fallback
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
