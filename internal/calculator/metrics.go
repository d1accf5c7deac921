package calculator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metric instruments are no-ops until InitMetrics runs.
var (
	opsCounter       metric.Int64Counter     = noop.Int64Counter{}
	opsHistogram     metric.Float64Histogram = noop.Float64Histogram{}
	errorCounter     metric.Int64Counter     = noop.Int64Counter{}
	resultGauge      metric.Float64Gauge     = noop.Float64Gauge{}
	keyCounter       metric.Int64Counter     = noop.Int64Counter{}
	nonFiniteCounter metric.Int64Counter     = noop.Int64Counter{}
)

// ErrorCounter is the calculator domain's error counter, shared with the
// session handlers so that all calculator failures land in one series.
func ErrorCounter() metric.Int64Counter { return errorCounter }

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	opsCounter, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of calculator operations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of calculator operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of calculator errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The result of the last calculator operation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	keyCounter, err = meter.Int64Counter("calculator.keys.total",
		metric.WithDescription("Total number of keypad presses applied to engines"),
		metric.WithUnit("{key}"),
	)
	if err != nil {
		return fmt.Errorf("creating key counter: %w", err)
	}

	nonFiniteCounter, err = meter.Int64Counter("calculator.non_finite_results.total",
		metric.WithDescription("Results that rendered as Infinity or NaN"),
		metric.WithUnit("{result}"),
	)
	if err != nil {
		return fmt.Errorf("creating non-finite counter: %w", err)
	}

	return nil
}

// RecordKeys counts keys applied to an engine and flags a non-finite display.
func RecordKeys(ctx context.Context, keys []Key, state Snapshot) {
	for _, k := range keys {
		keyCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("key.kind", k.Kind.String())))
	}
	if isNonFinite(state.Display) {
		nonFiniteCounter.Add(ctx, 1)
	}
}

func isNonFinite(display string) bool {
	return display == TextInfinity || display == TextNegInfinity || display == TextNaN
}
