package ports

import (
	"context"
	"time"

	"github.com/ahrav/go-tally/internal/domain"
)

// DatasetLoader loads the sellers, products and purchase records an
// analysis runs over. Implementations could read a single JSON document,
// a directory of per-collection files, or an embedded fixture.
type DatasetLoader interface {
	// Load reads the dataset identified by source.
	// The meaning of source (file path, directory, URL) is up to the
	// implementation. Load does not validate record contents.
	Load(ctx context.Context, source string) (*domain.Dataset, error)
}

// MetricsCollector defines the interface for collecting operational metrics.
// Implementations should integrate with observability platforms like
// Prometheus,
// OpenTelemetry, or custom monitoring solutions.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	// This is useful for tracking events like processed records, skipped
	// references, failed analyses, etc.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	// This is useful for tracking values like the number of ranked sellers
	// or the revenue total of the last analysis.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram.
	// This is useful for tracking distributions like bonuses or dataset
	// sizes.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
