package ports

import (
	"context"

	"github.com/ahrav/go-arena/internal/domain"
)

// ScoreGenerator produces the raw score of one contestant turn.
// Implementations may simulate, replay or call out to an external runner;
// the tournament core only consumes the returned value.
type ScoreGenerator interface {
	// Score returns the score for the contestant at the given 1-based slot of
	// the round's participant list, playing the given category. Scores carry
	// no stated bound and may be negative.
	//
	// Any error is fatal to the round in progress: the caller records nothing
	// for that round and aborts the tournament.
	Score(ctx context.Context, category string, slot int) (int, error)
}

// ScoreGeneratorFunc adapts an ordinary function to a ScoreGenerator.
type ScoreGeneratorFunc func(ctx context.Context, category string, slot int) (int, error)

// Score calls f(ctx, category, slot).
func (f ScoreGeneratorFunc) Score(ctx context.Context, category string, slot int) (int, error) {
	return f(ctx, category, slot)
}

// BonusGenerator draws the bonus term added to a finale base score.
type BonusGenerator interface {
	// Bonus returns an integer within r, both bounds inclusive.
	Bonus(r domain.BonusRange) int
}

// BonusFunc adapts an ordinary function to a BonusGenerator.
type BonusFunc func(r domain.BonusRange) int

// Bonus calls f(r).
func (f BonusFunc) Bonus(r domain.BonusRange) int { return f(r) }
