package health

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics:
// callhealth_calls_total (Counter) - Total number of calls recorded into the evaluator
// * name (string) - The name of the evaluator
// * outcome (string) - The outcome of the call ("success", "error", "slow_success", "slow_error")
//
// callhealth_calls_duration_milliseconds (Histogram) - Duration of recorded calls in milliseconds
// * name (string) - The name of the evaluator
// * outcome (string) - The outcome of the call
//
// callhealth_verdicts_total (Counter) - Total number of threshold verdicts by kind
// * name (string) - The name of the evaluator
// * verdict (string) - The verdict ("BELOW_THRESHOLDS", "ABOVE_THRESHOLDS", "BELOW_MINIMUM_CALLS_THRESHOLD")
//
// callhealth_not_permitted_total (Counter) - Total number of calls rejected without attempt
// * name (string) - The name of the evaluator
//
// callhealth_failure_rate (Gauge) - Current failure rate percentage
// * name (string) - The name of the evaluator
//
// callhealth_slow_call_rate (Gauge) - Current slow call rate percentage
// * name (string) - The name of the evaluator

const (
	instrumentationName    = "github.com/CarlosMaundu-zz/resilience4j/health"
	instrumentationVersion = "v0.1.0" // x-release-please
)

const (
	unitCall         = "{call}"
	unitVerdict      = "{verdict}"
	unitMilliseconds = "ms"
	unitPercent      = "%"
)

var _ Metrics = (*OTelMetrics)(nil)

type OTelMetrics struct {
	callsTotal    metric.Int64Counter
	callsDuration metric.Float64Histogram

	verdictsTotal     metric.Int64Counter
	notPermittedTotal metric.Int64Counter

	failureRate  metric.Float64Gauge
	slowCallRate metric.Float64Gauge
}

type OTelConfig struct {
	MeterProvider metric.MeterProvider
	MetricPrefix  string
	Attributes    []attribute.KeyValue
}

type OTelOption func(*OTelConfig)

func WithMeterProvider(meterProvider metric.MeterProvider) OTelOption {
	return func(cfg *OTelConfig) {
		cfg.MeterProvider = meterProvider
	}
}

func WithMetricPrefix(prefix string) OTelOption {
	return func(cfg *OTelConfig) {
		cfg.MetricPrefix = prefix
	}
}

func WithAttributes(attrs []attribute.KeyValue) OTelOption {
	return func(cfg *OTelConfig) {
		copied := make([]attribute.KeyValue, len(attrs))
		copy(copied, attrs)
		cfg.Attributes = copied
	}
}

func NewOTelMetrics(opts ...OTelOption) (*OTelMetrics, error) {
	cfg := &OTelConfig{
		MeterProvider: otel.GetMeterProvider(),
		MetricPrefix:  "callhealth_",
		Attributes:    []attribute.KeyValue{},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	meter := cfg.MeterProvider.Meter(instrumentationName, metric.WithInstrumentationVersion(instrumentationVersion))

	callsTotal, err := meter.Int64Counter(
		cfg.MetricPrefix+"calls_total",
		metric.WithDescription("Total number of calls recorded into the evaluator"),
		metric.WithUnit(unitCall),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calls_total counter: %w", err)
	}

	callsDuration, err := meter.Float64Histogram(
		cfg.MetricPrefix+"calls_duration_milliseconds",
		metric.WithDescription("Duration of recorded calls in milliseconds"),
		metric.WithUnit(unitMilliseconds),
		metric.WithExplicitBucketBoundaries(0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calls_duration_milliseconds histogram: %w", err)
	}

	verdictsTotal, err := meter.Int64Counter(
		cfg.MetricPrefix+"verdicts_total",
		metric.WithDescription("Total number of threshold verdicts by kind"),
		metric.WithUnit(unitVerdict),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create verdicts_total counter: %w", err)
	}

	notPermittedTotal, err := meter.Int64Counter(
		cfg.MetricPrefix+"not_permitted_total",
		metric.WithDescription("Total number of calls rejected without attempt"),
		metric.WithUnit(unitCall),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create not_permitted_total counter: %w", err)
	}

	failureRate, err := meter.Float64Gauge(
		cfg.MetricPrefix+"failure_rate",
		metric.WithDescription("Current failure rate percentage"),
		metric.WithUnit(unitPercent),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create failure_rate gauge: %w", err)
	}

	slowCallRate, err := meter.Float64Gauge(
		cfg.MetricPrefix+"slow_call_rate",
		metric.WithDescription("Current slow call rate percentage"),
		metric.WithUnit(unitPercent),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create slow_call_rate gauge: %w", err)
	}

	return &OTelMetrics{
		callsTotal:        callsTotal,
		callsDuration:     callsDuration,
		verdictsTotal:     verdictsTotal,
		notPermittedTotal: notPermittedTotal,
		failureRate:       failureRate,
		slowCallRate:      slowCallRate,
	}, nil
}

func (m *OTelMetrics) RecordCall(ctx context.Context, call Call) {
	baseAttrs := []attribute.KeyValue{
		attribute.String("name", call.Name),
		attribute.String("outcome", call.Outcome.String()),
	}

	m.callsTotal.Add(ctx, 1, metric.WithAttributes(baseAttrs...))
	m.callsDuration.Record(ctx, float64(call.Duration.Milliseconds()), metric.WithAttributes(baseAttrs...))

	m.verdictsTotal.Add(
		ctx, 1, metric.WithAttributes(
			attribute.String("name", call.Name), attribute.String("verdict", call.Result.String()),
		),
	)
}

func (m *OTelMetrics) RecordNotPermitted(ctx context.Context, rejection Rejection) {
	m.notPermittedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("name", rejection.Name)))
}

func (m *OTelMetrics) RecordRates(ctx context.Context, rates Rates) {
	nameAttr := attribute.String("name", rates.Name)

	m.failureRate.Record(ctx, rates.FailureRate, metric.WithAttributes(nameAttr))
	m.slowCallRate.Record(ctx, rates.SlowCallRate, metric.WithAttributes(nameAttr))
}
