package domain

import "fmt"

// Phase distinguishes qualification rounds from finale rounds in reports.
type Phase string

const (
	PhaseQualifying Phase = "qualifying"
	PhaseFinale     Phase = "finale"
)

// BonusRange is an inclusive range of finale bonus points.
type BonusRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max" validate:"gtefield=Min"`
}

// Contains reports whether v lies within the range.
func (r BonusRange) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// String formats the range as "[min, max]".
func (r BonusRange) String() string { return fmt.Sprintf("[%d, %d]", r.Min, r.Max) }

// TurnScore is the outcome of one contestant's turn in a round.
type TurnScore struct {
	ContestantID string
	Name         string

	// Slot is the 1-based position of the contestant among the round's
	// participants.
	Slot int

	// Base is the score returned by the score generator.
	Base int

	// Bonus is the finale bonus; always 0 in qualifying rounds.
	Bonus int

	// Score is the value recorded for the contestant, Base + Bonus.
	Score int
}

// RoundReport describes a committed round.
type RoundReport struct {
	Phase Phase

	// Round is 1-indexed within its phase.
	Round    int
	Category string

	// Description is the finale challenge text; empty for qualifying rounds.
	Description string

	Turns []TurnScore
}

// Scores returns the recorded score of each turn in turn order.
func (r RoundReport) Scores() []int {
	out := make([]int, len(r.Turns))
	for i, t := range r.Turns {
		out[i] = t.Score
	}
	return out
}
