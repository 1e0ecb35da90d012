package application

import (
	"slices"

	"github.com/ahrav/go-arena/internal/domain"
)

// TournamentConfig defines everything needed to run a tournament and
// serves as the primary configuration entry point for the engine.
// All fields are fixed for the lifetime of a tournament; the orchestrator
// takes a copy at construction.
type TournamentConfig struct {
	// TotalQualifyingRounds is the number of qualification rounds every
	// contestant plays.
	TotalQualifyingRounds int `yaml:"total_qualifying_rounds" validate:"min=1,max=100"`
	// FinaleRounds is the number of finale rounds the finalists play.
	FinaleRounds int `yaml:"finale_rounds" validate:"min=1,max=20"`
	// ContestantCount is the requested number of contestants. Values outside
	// ContestantLimits are clamped to the nearest bound, never rejected.
	ContestantCount int `yaml:"contestant_count"`
	// ContestantLimits bounds the contestant count.
	ContestantLimits ContestantLimits `yaml:"contestant_limits"`
	// Categories is the ordered qualification category list, rotated
	// round-robin across rounds.
	Categories []string `yaml:"categories" validate:"required,min=1,dive,required,category"`
	// FinaleCategories is the explicit category sequence of the finale, one
	// entry per finale round.
	FinaleCategories []string `yaml:"finale_categories" validate:"required,min=1,dive,required,category"`
	// FinaleDescriptions optionally names the challenge of each finale round.
	// When empty, well-known categories fall back to a built-in description.
	FinaleDescriptions []string `yaml:"finale_descriptions,omitempty" validate:"omitempty,dive,max=200,singleline"`
	// FinaleBonus is the inclusive range of the bonus added to each finale
	// base score.
	FinaleBonus domain.BonusRange `yaml:"finale_bonus"`
	// FinalistCount is the number of contestants admitted to the finale.
	// It is clamped to the actual contestant count at selection time.
	FinalistCount int `yaml:"finalist_count" validate:"min=1"`
	// ContestantNames optionally names contestants in registration order.
	// Missing names fall back to "Contestant_<n>".
	ContestantNames []string `yaml:"contestant_names,omitempty" validate:"omitempty,dive,required,max=100,singleline"`
	// Scoring configures the score generator used by the CLI.
	Scoring ScoringConfig `yaml:"scoring,omitempty"`
}

// ContestantLimits is the inclusive range a contestant count is clamped to.
type ContestantLimits struct {
	Min int `yaml:"min" validate:"min=1"`
	Max int `yaml:"max" validate:"gtefield=Min"`
}

// ScoringConfig selects and tunes the score generator. The engine itself
// never reads it; it is consumed when wiring adapters.
type ScoringConfig struct {
	// Seed seeds the simulated generator and the bonus source. Zero means
	// a time-based seed.
	Seed uint64 `yaml:"seed,omitempty"`
	// ScriptPath points at a YAML score sheet to replay instead of
	// simulating scores.
	ScriptPath string `yaml:"script_path,omitempty"`
	// TurnDelayMS paces consecutive contestant turns.
	TurnDelayMS int `yaml:"turn_delay_ms,omitempty" validate:"min=0,max=60000"`
	// TurnTimeoutMS bounds a single turn; zero disables the deadline.
	TurnTimeoutMS int `yaml:"turn_timeout_ms,omitempty" validate:"min=0,max=600000"`
}

// Default values of a tournament.
const (
	DefaultQualifyingRounds = 10
	DefaultFinaleRounds     = 3
	DefaultContestantCount  = 8
	DefaultFinalistCount    = 3
	DefaultMinContestants   = 4
	DefaultMaxContestants   = 12
	DefaultBonusMin         = 10
	DefaultBonusMax         = 29
)

// finaleChallenges describes the finale challenge of well-known categories.
var finaleChallenges = map[string]string{
	"graph":      "Advanced Graph Traversal Challenge",
	"linkedlist": "Complex Linked List Manipulation",
	"sorting":    "Hybrid Sorting Algorithm Test",
}

// DefaultTournamentConfig returns the configuration of a standard
// tournament: ten qualification rounds over five categories and a
// three-round finale among the top three.
func DefaultTournamentConfig() TournamentConfig {
	return TournamentConfig{
		TotalQualifyingRounds: DefaultQualifyingRounds,
		FinaleRounds:          DefaultFinaleRounds,
		ContestantCount:       DefaultContestantCount,
		ContestantLimits:      ContestantLimits{Min: DefaultMinContestants, Max: DefaultMaxContestants},
		Categories:            []string{"sorting", "graph", "linkedlist", "hashing", "stack_queue"},
		FinaleCategories:      []string{"graph", "linkedlist", "sorting"},
		FinaleBonus:           domain.BonusRange{Min: DefaultBonusMin, Max: DefaultBonusMax},
		FinalistCount:         DefaultFinalistCount,
	}
}

// ClampContestantCount clamps n to the inclusive limits.
func ClampContestantCount(n int, limits ContestantLimits) int {
	return max(limits.Min, min(n, limits.Max))
}

// EffectiveContestantCount returns the contestant count after clamping.
func (c TournamentConfig) EffectiveContestantCount() int {
	return ClampContestantCount(c.ContestantCount, c.ContestantLimits)
}

// ContestantName returns the configured name of the contestant at the given
// 1-based position, or the default name.
func (c TournamentConfig) ContestantName(position int) string {
	if position >= 1 && position <= len(c.ContestantNames) {
		return c.ContestantNames[position-1]
	}
	return domain.DefaultContestantName(position)
}

// FinaleDescription returns the challenge description of the given
// 1-indexed finale round, or "" when none is known.
func (c TournamentConfig) FinaleDescription(round int) string {
	if round >= 1 && round <= len(c.FinaleDescriptions) {
		return c.FinaleDescriptions[round-1]
	}
	if round >= 1 && round <= len(c.FinaleCategories) {
		return finaleChallenges[c.FinaleCategories[round-1]]
	}
	return ""
}

// Limits returns the round counts a session is created with.
func (c TournamentConfig) Limits() domain.SessionLimits {
	return domain.SessionLimits{
		QualifyingRounds: c.TotalQualifyingRounds,
		FinaleRounds:     c.FinaleRounds,
	}
}

// Clone returns a deep copy so that callers can't mutate shared slices.
func (c TournamentConfig) Clone() TournamentConfig {
	c.Categories = slices.Clone(c.Categories)
	c.FinaleCategories = slices.Clone(c.FinaleCategories)
	c.FinaleDescriptions = slices.Clone(c.FinaleDescriptions)
	c.ContestantNames = slices.Clone(c.ContestantNames)
	return c
}
