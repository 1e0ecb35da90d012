package middleware

import (
	"context"

	"github.com/ahrav/go-arena/internal/domain"
	"github.com/ahrav/go-arena/internal/ports"
)

var _ ports.Observer = (*MetricsObserver)(nil)

// Leader score phases. The podium is reported as its own phase.
const (
	leaderPhaseQualifying = string(domain.PhaseQualifying)
	leaderPhaseFinale     = string(domain.PhaseFinale)
	leaderPhaseFinal      = "final"
)

// MetricsObserver translates tournament progress into collector metrics:
// the current stage, committed rounds, the leader's score per phase and the
// persistence outcome.
type MetricsObserver struct {
	ports.NopObserver
	metrics ports.MetricsCollector
}

// NewMetricsObserver creates an observer that reports to metrics.
func NewMetricsObserver(metrics ports.MetricsCollector) *MetricsObserver {
	return &MetricsObserver{metrics: metrics}
}

// StageEntered records the stage ordinal.
func (m *MetricsObserver) StageEntered(_ context.Context, _ string, stage domain.Stage) {
	m.metrics.RecordGauge(ports.MetricStage, float64(stage), nil)
}

// QualifyingRoundCompleted counts the round and records the leader's total.
func (m *MetricsObserver) QualifyingRoundCompleted(_ context.Context, _ domain.RoundReport, standings []domain.Standing) {
	m.round(leaderPhaseQualifying, standings)
}

// FinaleRoundCompleted counts the round and records the leader's finale
// total.
func (m *MetricsObserver) FinaleRoundCompleted(_ context.Context, _ domain.RoundReport, standings []domain.Standing) {
	m.round(leaderPhaseFinale, standings)
}

// WinnerDeclared records the champion's final score.
func (m *MetricsObserver) WinnerDeclared(_ context.Context, podium []domain.Standing) {
	m.leader(leaderPhaseFinal, podium)
}

// Persisted counts the finished tournament by whether the record was stored.
func (m *MetricsObserver) Persisted(_ context.Context, _ domain.Record, err error) {
	status := "persisted"
	if err != nil {
		status = "persist_failed"
	}
	m.metrics.RecordCounter(ports.MetricTournamentsTotal, 1, map[string]string{"status": status})
}

func (m *MetricsObserver) round(phase string, standings []domain.Standing) {
	m.metrics.RecordCounter(ports.MetricRoundsTotal, 1, map[string]string{"phase": phase})
	m.leader(phase, standings)
}

func (m *MetricsObserver) leader(phase string, standings []domain.Standing) {
	if len(standings) == 0 {
		return
	}
	m.metrics.RecordGauge(ports.MetricLeaderScore, float64(standings[0].Score), map[string]string{"phase": phase})
}
