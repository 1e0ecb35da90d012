// Package middleware provides cross-cutting observability for the tournament
// engine: a Prometheus metrics collector and observers that turn tournament
// progress into metrics and OpenTelemetry spans.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-arena/internal/ports"
)

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using Prometheus.
// Known arena metrics go to dedicated vectors; anything else lands in generic
// per-name vectors so that no observation is lost.
type PrometheusMetrics struct {
	turnLatency      *prometheus.HistogramVec
	turnsTotal       *prometheus.CounterVec
	turnScore        *prometheus.HistogramVec
	roundsTotal      *prometheus.CounterVec
	tournamentsTotal *prometheus.CounterVec
	stage            prometheus.Gauge
	leaderScore      *prometheus.GaugeVec

	operationLatency *prometheus.HistogramVec
	operationCounter *prometheus.CounterVec
	systemGauges     *prometheus.GaugeVec
	values           *prometheus.HistogramVec
}

// NewPrometheusMetrics creates the arena metrics and registers them with reg.
// A nil reg uses the default Prometheus registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		turnLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arena_turn_duration_seconds",
				Help:    "Time taken to produce one contestant score.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"category", "status"},
		),
		turnsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: ports.MetricTurnsTotal,
				Help: "Contestant turns played, by category and outcome.",
			},
			[]string{"category", "status"},
		),
		turnScore: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    ports.MetricTurnScore,
				Help:    "Distribution of scores returned by the score generator.",
				Buckets: prometheus.LinearBuckets(0, 10, 13),
			},
			[]string{"category"},
		),
		roundsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: ports.MetricRoundsTotal,
				Help: "Committed rounds, by phase.",
			},
			[]string{"phase"},
		),
		tournamentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: ports.MetricTournamentsTotal,
				Help: "Finished tournaments, by persistence status.",
			},
			[]string{"status"},
		),
		stage: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: ports.MetricStage,
				Help: "Ordinal of the stage the current tournament is in.",
			},
		),
		leaderScore: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: ports.MetricLeaderScore,
				Help: "Score of the current leader, by phase.",
			},
			[]string{"phase"},
		),

		operationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arena_operation_duration_seconds",
				Help:    "Execution time of other arena operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arena_operations_total",
				Help: "Counters without a dedicated arena metric.",
			},
			[]string{"metric", "status"},
		),
		systemGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "arena_system_state",
				Help: "Gauges without a dedicated arena metric.",
			},
			[]string{"metric"},
		),
		values: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arena_observed_values",
				Help:    "Histograms without a dedicated arena metric.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"metric"},
		),
	}
}

// label returns labels[key], or "unknown" when it is missing or empty.
func label(labels map[string]string, key string) string {
	if v := labels[key]; v != "" {
		return v
	}
	return "unknown"
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	if operation == ports.MetricTurnLatency {
		pm.turnLatency.WithLabelValues(label(labels, "category"), label(labels, "status")).
			Observe(duration.Seconds())
		return
	}
	pm.operationLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case ports.MetricTurnsTotal:
		pm.turnsTotal.WithLabelValues(label(labels, "category"), label(labels, "status")).Add(value)
	case ports.MetricRoundsTotal:
		pm.roundsTotal.WithLabelValues(label(labels, "phase")).Add(value)
	case ports.MetricTournamentsTotal:
		pm.tournamentsTotal.WithLabelValues(label(labels, "status")).Add(value)
	default:
		pm.operationCounter.WithLabelValues(metric, label(labels, "status")).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case ports.MetricStage:
		pm.stage.Set(value)
	case ports.MetricLeaderScore:
		pm.leaderScore.WithLabelValues(label(labels, "phase")).Set(value)
	default:
		pm.systemGauges.WithLabelValues(metric).Set(value)
	}
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	if metric == ports.MetricTurnScore {
		pm.turnScore.WithLabelValues(label(labels, "category")).Observe(value)
		return
	}
	pm.values.WithLabelValues(metric).Observe(value)
}
