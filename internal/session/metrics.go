package session

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	activeSessions metric.Int64UpDownCounter = noop.Int64UpDownCounter{}
	sweptSessions  metric.Int64Counter       = noop.Int64Counter{}
)

// InitMetrics registers the session OTel instruments.
func InitMetrics() error {
	meter := otel.Meter("session")

	var err error

	activeSessions, err = meter.Int64UpDownCounter("calculator.sessions.active",
		metric.WithDescription("Calculator sessions currently held in memory"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return fmt.Errorf("creating active sessions counter: %w", err)
	}

	sweptSessions, err = meter.Int64Counter("calculator.sessions.swept.total",
		metric.WithDescription("Sessions removed after idling past the timeout"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return fmt.Errorf("creating swept sessions counter: %w", err)
	}

	return nil
}

// RegisterCollectors exposes the store size on the Prometheus registry
// behind /metrics. Registering twice for the same registry is not an error.
func RegisterCollectors(reg prometheus.Registerer, store *Store) error {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "calculator_sessions",
		Help: "Calculator sessions currently held in memory.",
	}, func() float64 {
		return float64(store.Len())
	})

	if err := reg.Register(gauge); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return nil
		}
		return fmt.Errorf("registering sessions gauge: %w", err)
	}
	return nil
}
