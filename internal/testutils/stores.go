package testutils

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/ahrav/go-arena/internal/domain"
	"github.com/ahrav/go-arena/internal/ports"
)

var (
	_ ports.ResultStore = (*MemoryStore)(nil)
	_ ports.ResultStore = FailingStore{}
)

// ErrStoreUnavailable is the default failure of FailingStore.
var ErrStoreUnavailable = errors.New("store unavailable")

// MemoryStore keeps appended records in memory.
type MemoryStore struct {
	mu      sync.Mutex
	records []domain.Record
}

// Append implements ports.ResultStore.
func (m *MemoryStore) Append(_ context.Context, record domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

// Records returns a copy of the appended records.
func (m *MemoryStore) Records() []domain.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.records)
}

// FailingStore rejects every record with Err, or ErrStoreUnavailable.
type FailingStore struct{ Err error }

// Append implements ports.ResultStore.
func (f FailingStore) Append(context.Context, domain.Record) error {
	if f.Err != nil {
		return f.Err
	}
	return ErrStoreUnavailable
}

// CountingContinuation counts pauses per stage. When FailAt is positive the
// n-th pause (1-based) returns Err.
type CountingContinuation struct {
	mu     sync.Mutex
	Pauses []domain.Stage
	FailAt int
	Err    error
}

// Continue implements ports.Continuation.
func (c *CountingContinuation) Continue(_ context.Context, stage domain.Stage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Pauses = append(c.Pauses, stage)
	if c.FailAt > 0 && len(c.Pauses) == c.FailAt {
		return c.Err
	}
	return nil
}

// FixedBonus returns a bonus generator that always yields v.
func FixedBonus(v int) ports.BonusGenerator {
	return ports.BonusFunc(func(domain.BonusRange) int { return v })
}
