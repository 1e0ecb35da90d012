package testutils

import (
	"maps"
	"sync"
	"time"

	"github.com/ahrav/go-arena/internal/ports"
)

var _ ports.MetricsCollector = (*RecordingMetrics)(nil)

// MetricSample is one recorded metric observation.
type MetricSample struct {
	Metric string
	Value  float64
	Labels map[string]string
}

// RecordingMetrics captures every metric observation in memory.
type RecordingMetrics struct {
	mu         sync.Mutex
	Latencies  []MetricSample
	Counters   []MetricSample
	Gauges     []MetricSample
	Histograms []MetricSample
}

// RecordLatency implements ports.MetricsCollector. The value is stored in
// seconds.
func (r *RecordingMetrics) RecordLatency(operation string, d time.Duration, labels map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Latencies = append(r.Latencies, MetricSample{operation, d.Seconds(), maps.Clone(labels)})
}

// RecordCounter implements ports.MetricsCollector.
func (r *RecordingMetrics) RecordCounter(metric string, value float64, labels map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Counters = append(r.Counters, MetricSample{metric, value, maps.Clone(labels)})
}

// RecordGauge implements ports.MetricsCollector.
func (r *RecordingMetrics) RecordGauge(metric string, value float64, labels map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Gauges = append(r.Gauges, MetricSample{metric, value, maps.Clone(labels)})
}

// RecordHistogram implements ports.MetricsCollector.
func (r *RecordingMetrics) RecordHistogram(metric string, value float64, labels map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Histograms = append(r.Histograms, MetricSample{metric, value, maps.Clone(labels)})
}

// CounterTotal sums the counter samples of metric whose labels include all
// of match.
func (r *RecordingMetrics) CounterTotal(metric string, match map[string]string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0.0
	for _, s := range r.Counters {
		if s.Metric == metric && labelsMatch(s.Labels, match) {
			total += s.Value
		}
	}
	return total
}

// LastGauge returns the most recent value of a gauge, and whether one was
// recorded.
func (r *RecordingMetrics) LastGauge(metric string, match map[string]string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.Gauges) - 1; i >= 0; i-- {
		s := r.Gauges[i]
		if s.Metric == metric && labelsMatch(s.Labels, match) {
			return s.Value, true
		}
	}
	return 0, false
}

func labelsMatch(labels, match map[string]string) bool {
	for k, v := range match {
		if labels[k] != v {
			return false
		}
	}
	return true
}
