package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-arena/internal/domain"
)

// Test that our interfaces can be implemented correctly

// memoryStore implements ResultStore.
type memoryStore struct{ records []domain.Record }

func (m *memoryStore) Append(_ context.Context, record domain.Record) error {
	m.records = append(m.records, record)
	return nil
}

// mockMetricsCollector implements MetricsCollector.
type mockMetricsCollector struct {
	counters map[string]float64
}

func (m *mockMetricsCollector) RecordLatency(string, time.Duration, map[string]string) {}

func (m *mockMetricsCollector) RecordCounter(metric string, value float64, _ map[string]string) {
	m.counters[metric] += value
}

func (m *mockMetricsCollector) RecordGauge(string, float64, map[string]string) {}

func (m *mockMetricsCollector) RecordHistogram(string, float64, map[string]string) {}

func TestResultStoreInterface(t *testing.T) {
	var store ResultStore = &memoryStore{}

	require.NoError(t, store.Append(context.Background(), domain.Record{TournamentID: "T1"}))
	assert.Len(t, store.(*memoryStore).records, 1)
}

func TestMetricsCollectorInterface(t *testing.T) {
	m := &mockMetricsCollector{counters: map[string]float64{}}
	var collector MetricsCollector = m

	collector.RecordCounter("turns_total", 1, nil)
	collector.RecordCounter("turns_total", 2, nil)

	assert.Equal(t, 3.0, m.counters["turns_total"])
}

func TestScoreGeneratorFunc(t *testing.T) {
	var gen ScoreGenerator = ScoreGeneratorFunc(func(_ context.Context, category string, slot int) (int, error) {
		return len(category) * slot, nil
	})

	score, err := gen.Score(context.Background(), "graph", 3)
	require.NoError(t, err)
	assert.Equal(t, 15, score)
}

func TestBonusFunc(t *testing.T) {
	var bonus BonusGenerator = BonusFunc(func(r domain.BonusRange) int { return r.Max })
	assert.Equal(t, 29, bonus.Bonus(domain.BonusRange{Min: 10, Max: 29}))
}

func TestNoPause(t *testing.T) {
	require.NoError(t, NoPause.Continue(context.Background(), domain.StageQualifying))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NoPause.Continue(ctx, domain.StageQualifying), context.Canceled)
}
