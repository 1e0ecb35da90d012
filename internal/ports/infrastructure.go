package ports

import (
	"context"
	"time"

	"github.com/ahrav/go-arena/internal/domain"
)

// ResultStore durably records completed tournaments.
// Implementations could append to a local log file, a database table or a
// remote service. A store only ever appends; records are never rewritten.
type ResultStore interface {
	// Append writes one tournament record. It is called exactly once per
	// tournament, after the winner was declared. A failure does not
	// invalidate the in-memory result.
	Append(ctx context.Context, record domain.Record) error
}

// MetricsCollector defines the interface for collecting operational metrics.
// Implementations should integrate with observability platforms like
// Prometheus or OpenTelemetry.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric, e.g. turns played or
	// failed.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric, e.g. the current
	// stage or the leader's score.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram, e.g. turn scores.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
