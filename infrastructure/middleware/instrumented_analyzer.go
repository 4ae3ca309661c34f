package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ahrav/go-tally/internal/application"
	"github.com/ahrav/go-tally/internal/domain"
	"github.com/ahrav/go-tally/internal/ports"
)

// OperationAnalyze labels analysis latency and outcome metrics.
const OperationAnalyze = "analyze"

// SalesAnalyzer is the part of *application.Analyzer the decorator wraps.
type SalesAnalyzer interface {
	Analyze(data *domain.Dataset, opts *application.Options) (*application.Analysis, error)
}

var _ SalesAnalyzer = (*application.Analyzer)(nil)

// InstrumentedAnalyzer wraps a SalesAnalyzer with an OpenTelemetry span,
// metrics and structured logs. The wrapped analyzer stays free of any
// observability concern.
type InstrumentedAnalyzer struct {
	next    SalesAnalyzer
	metrics ports.MetricsCollector
	logger  *zap.Logger
	tracer  trace.Tracer
}

// InstrumentOption configures an InstrumentedAnalyzer.
type InstrumentOption func(*InstrumentedAnalyzer)

// WithMetrics sets the metrics collector. Without it no metrics are
// recorded.
func WithMetrics(metrics ports.MetricsCollector) InstrumentOption {
	return func(a *InstrumentedAnalyzer) { a.metrics = metrics }
}

// WithLogger sets the logger. Without it logs are discarded.
func WithLogger(logger *zap.Logger) InstrumentOption {
	return func(a *InstrumentedAnalyzer) { a.logger = logger }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(tracer trace.Tracer) InstrumentOption {
	return func(a *InstrumentedAnalyzer) { a.tracer = tracer }
}

// NewInstrumentedAnalyzer wraps next.
func NewInstrumentedAnalyzer(next SalesAnalyzer, opts ...InstrumentOption) *InstrumentedAnalyzer {
	a := &InstrumentedAnalyzer{
		next:   next,
		logger: zap.NewNop(),
		tracer: otel.Tracer("sales-analyzer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the wrapped analysis inside a span. ctx only parents the
// span; the analysis itself is synchronous and not cancelable.
func (a *InstrumentedAnalyzer) Analyze(
	ctx context.Context,
	data *domain.Dataset,
	opts *application.Options,
) (*application.Analysis, error) {
	_, span := a.tracer.Start(ctx, "Analyzer.Analyze")
	defer span.End()

	if data != nil {
		span.SetAttributes(
			attribute.Int("dataset.sellers", len(data.Sellers)),
			attribute.Int("dataset.products", len(data.Products)),
			attribute.Int("dataset.purchase_records", len(data.PurchaseRecords)),
		)
	}

	start := time.Now()
	analysis, err := a.next.Analyze(data, opts)
	elapsed := time.Since(start)

	if err != nil {
		a.failed(span, elapsed, err)
		return nil, err
	}

	a.succeeded(span, elapsed, analysis)
	return analysis, nil
}

func (a *InstrumentedAnalyzer) failed(span trace.Span, elapsed time.Duration, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	if a.metrics != nil {
		labels := map[string]string{"status": "error"}
		a.metrics.RecordLatency(OperationAnalyze, elapsed, labels)
		a.metrics.RecordCounter(MetricAnalyses, 1, labels)
	}

	a.logger.Error("sales analysis failed",
		zap.Error(err),
		zap.Duration("duration", elapsed),
	)
}

func (a *InstrumentedAnalyzer) succeeded(span trace.Span, elapsed time.Duration, analysis *application.Analysis) {
	var revenue, profit, bonus float64
	for _, e := range analysis.Report {
		revenue += e.Revenue
		profit += e.Profit
		bonus += e.Bonus
	}

	span.SetAttributes(
		attribute.Int("analysis.sellers_ranked", len(analysis.Report)),
		attribute.Int("analysis.records_processed", analysis.RecordsProcessed),
		attribute.Int("analysis.items_processed", analysis.ItemsProcessed),
		attribute.Int("analysis.skipped_references", len(analysis.Skipped)),
	)
	span.SetStatus(codes.Ok, "")

	if a.metrics != nil {
		a.metrics.RecordLatency(OperationAnalyze, elapsed, nil)
		a.metrics.RecordCounter(MetricAnalyses, 1, nil)
		a.metrics.RecordCounter(MetricRecordsProcessed, float64(analysis.RecordsProcessed), nil)
		a.metrics.RecordCounter(MetricItemsProcessed, float64(analysis.ItemsProcessed), nil)
		for _, ref := range analysis.Skipped {
			a.metrics.RecordCounter(MetricReferencesSkipped, 1, map[string]string{"reference": string(ref.Kind)})
		}
		a.metrics.RecordGauge(MetricSellersRanked, float64(len(analysis.Report)), nil)
		a.metrics.RecordGauge(MetricRevenueTotal, revenue, nil)
		a.metrics.RecordGauge(MetricProfitTotal, profit, nil)
		a.metrics.RecordGauge(MetricBonusTotal, bonus, nil)
		for _, e := range analysis.Report {
			a.metrics.RecordHistogram(MetricSellerBonus, e.Bonus, nil)
		}
	}

	for _, ref := range analysis.Skipped {
		a.logger.Warn("skipped unknown reference",
			zap.String("reference", string(ref.Kind)),
			zap.String("id", ref.ID),
			zap.Int("record", ref.RecordIndex),
			zap.Int("item", ref.ItemIndex),
			zap.String("suggestion", ref.Suggestion),
		)
	}

	a.logger.Info("sales analysis completed",
		zap.Int("sellers", len(analysis.Report)),
		zap.Int("records", analysis.RecordsProcessed),
		zap.Int("items", analysis.ItemsProcessed),
		zap.Int("skipped", len(analysis.Skipped)),
		zap.Duration("duration", elapsed),
	)
}
