// Package testutils provides deterministic fakes of the tournament ports for
// use in tests across packages.
package testutils

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/ahrav/go-arena/internal/ports"
)

var _ ports.ScoreGenerator = (*MockScoreGenerator)(nil)

// ErrMockScore is returned by MockScoreGenerator when told to fail.
var ErrMockScore = errors.New("mock score generator failure")

// ScoreCall records one call to MockScoreGenerator.Score.
type ScoreCall struct {
	Category string
	Slot     int
}

// MockScoreGenerator returns scripted scores in call order and records every
// call for later inspection.
// Once the script is exhausted it returns Default.
type MockScoreGenerator struct {
	mu     sync.Mutex
	script []int
	calls  []ScoreCall

	// Default is returned after the script is exhausted.
	Default int
	// FailAt makes the n-th call (1-based) fail with Err. Zero disables it.
	FailAt int
	// Err is returned by the failing call; ErrMockScore when nil.
	Err error
}

// NewMockScoreGenerator creates a generator that returns scores in order.
func NewMockScoreGenerator(scores ...int) *MockScoreGenerator {
	return &MockScoreGenerator{script: slices.Clone(scores)}
}

// Score implements ports.ScoreGenerator.
func (m *MockScoreGenerator) Score(ctx context.Context, category string, slot int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, ScoreCall{Category: category, Slot: slot})
	n := len(m.calls)

	if m.FailAt > 0 && n == m.FailAt {
		if m.Err != nil {
			return 0, m.Err
		}
		return 0, ErrMockScore
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if n <= len(m.script) {
		return m.script[n-1], nil
	}
	return m.Default, nil
}

// Calls returns a copy of all recorded calls.
func (m *MockScoreGenerator) Calls() []ScoreCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// CallCount returns the number of recorded calls.
func (m *MockScoreGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Categories returns the category of every call in order.
func (m *MockScoreGenerator) Categories() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.Category
	}
	return out
}
