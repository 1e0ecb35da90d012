// Package domain contains pure, dependency-free domain models and rules for
// the tournament engine: contestant records, the tournament session and its
// stage machine, round scheduling, ranking and the persisted result record.
package domain

import (
	"fmt"
	"slices"
)

// Contestant holds a contestant's identity and accumulated scores.
//
// Contestant is a value type. Fields are unexported so that the derived totals
// can never drift from the recorded scores; every update goes through
// ApplyRoundScore, ApplyFinaleScore or CombineFinalScore, which return a new
// value and leave the argument untouched.
type Contestant struct {
	id   string
	name string

	roundScores []int
	totalScore  int

	finaleScores     []int
	finaleScoreTotal int

	finalScore    int
	finalComputed bool
}

// NewContestant creates a contestant with no recorded scores.
func NewContestant(id, name string) Contestant {
	return Contestant{id: id, name: name}
}

// ContestantID returns the identifier assigned to the contestant registered at
// the given 1-based position, e.g. "C001".
func ContestantID(position int) string { return fmt.Sprintf("C%03d", position) }

// DefaultContestantName returns the display name used when no name is
// configured for the given 1-based position.
func DefaultContestantName(position int) string { return fmt.Sprintf("Contestant_%d", position) }

// ID returns the contestant's stable identifier.
func (c Contestant) ID() string { return c.id }

// Name returns the contestant's display label.
func (c Contestant) Name() string { return c.name }

// RoundScores returns a copy of the qualification scores in round order.
func (c Contestant) RoundScores() []int { return slices.Clone(c.roundScores) }

// RoundsPlayed returns how many qualification scores are recorded.
func (c Contestant) RoundsPlayed() int { return len(c.roundScores) }

// TotalScore returns the sum of all qualification scores.
func (c Contestant) TotalScore() int { return c.totalScore }

// AverageScore returns the mean qualification score, or 0 before the first
// round.
func (c Contestant) AverageScore() float64 {
	if len(c.roundScores) == 0 {
		return 0
	}
	return float64(c.totalScore) / float64(len(c.roundScores))
}

// FinaleScores returns a copy of the finale scores in round order.
func (c Contestant) FinaleScores() []int { return slices.Clone(c.finaleScores) }

// FinaleRoundsPlayed returns how many finale scores are recorded.
func (c Contestant) FinaleRoundsPlayed() int { return len(c.finaleScores) }

// FinaleScoreTotal returns the sum of all finale scores.
func (c Contestant) FinaleScoreTotal() int { return c.finaleScoreTotal }

// FinalScore returns the combined final score. The boolean is false until
// CombineFinalScore has been applied.
func (c Contestant) FinalScore() (int, bool) { return c.finalScore, c.finalComputed }

// ApplyRoundScore records a qualification score and returns the updated
// contestant. Every call records a new entry; negative scores are accepted.
func ApplyRoundScore(c Contestant, score int) Contestant {
	c.roundScores = append(slices.Clone(c.roundScores), score)
	c.totalScore = sum(c.roundScores)
	return c
}

// ApplyFinaleScore records a finale score and returns the updated contestant.
func ApplyFinaleScore(c Contestant, score int) Contestant {
	c.finaleScores = append(slices.Clone(c.finaleScores), score)
	c.finaleScoreTotal = sum(c.finaleScores)
	return c
}

// CombineFinalScore sets the final score to TotalScore + FinaleScoreTotal.
// The combination is a flat sum with no weighting and happens exactly once;
// a second call returns ErrFinalScoreAlreadySet.
func CombineFinalScore(c Contestant) (Contestant, error) {
	if c.finalComputed {
		return c, fmt.Errorf("contestant %s: %w", c.id, ErrFinalScoreAlreadySet)
	}
	c.finalScore = c.totalScore + c.finaleScoreTotal
	c.finalComputed = true
	return c, nil
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
