package domain

import (
	"fmt"
	"slices"
	"time"
)

// SessionLimits fixes the number of rounds of each phase for a session.
type SessionLimits struct {
	// QualifyingRounds is the number of qualification rounds (N).
	QualifyingRounds int

	// FinaleRounds is the number of finale rounds (M).
	FinaleRounds int
}

// Session is the state of one tournament. It exclusively owns the contestant
// records and the finalist list and enforces the tournament protocol: scores
// are committed one whole round at a time, finalists are chosen exactly once,
// and the stage only moves forward.
//
// Session is not safe for concurrent use; a tournament is driven by a single
// sequential flow of control.
type Session struct {
	id        string
	startedAt time.Time
	limits    SessionLimits
	stage     Stage

	contestants []Contestant

	// finalists holds positions into contestants, in selection order.
	finalists    []int
	finalistsSet bool
	finalized    bool

	roundsCompleted       int
	finaleRoundsCompleted int
}

// NewSession creates a session in StageInit for the given contestants, which
// must be non-empty and carry unique, non-empty IDs. Registration order is the
// order of the slice and is preserved for tie-breaking.
func NewSession(id string, startedAt time.Time, contestants []Contestant, limits SessionLimits) (*Session, error) {
	verr := NewValidationError("session")
	if id == "" {
		verr.AddError("tournament id is required")
	}
	if len(contestants) == 0 {
		verr.AddError("at least one contestant is required")
	}
	if limits.QualifyingRounds < 1 {
		verr.AddError(fmt.Sprintf("qualifying rounds must be at least 1, got %d", limits.QualifyingRounds))
	}
	if limits.FinaleRounds < 1 {
		verr.AddError(fmt.Sprintf("finale rounds must be at least 1, got %d", limits.FinaleRounds))
	}
	if verr.HasErrors() {
		return nil, verr
	}

	seen := make(map[string]struct{}, len(contestants))
	for _, c := range contestants {
		if c.ID() == "" {
			return nil, fmt.Errorf("contestant %q: id: %w", c.Name(), ErrEmptyValue)
		}
		if _, ok := seen[c.ID()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateContestant, c.ID())
		}
		seen[c.ID()] = struct{}{}
	}

	return &Session{
		id:          id,
		startedAt:   startedAt,
		limits:      limits,
		stage:       StageInit,
		contestants: slices.Clone(contestants),
	}, nil
}

// ID returns the tournament identifier.
func (s *Session) ID() string { return s.id }

// StartedAt returns the tournament start time.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Limits returns the configured round counts.
func (s *Session) Limits() SessionLimits { return s.limits }

// Stage returns the current stage.
func (s *Session) Stage() Stage { return s.stage }

// RoundsCompleted returns the number of committed qualification rounds.
func (s *Session) RoundsCompleted() int { return s.roundsCompleted }

// FinaleRoundsCompleted returns the number of committed finale rounds.
func (s *Session) FinaleRoundsCompleted() int { return s.finaleRoundsCompleted }

// Len returns the number of registered contestants.
func (s *Session) Len() int { return len(s.contestants) }

// Contestants returns a snapshot of all contestants in registration order.
func (s *Session) Contestants() []Contestant { return slices.Clone(s.contestants) }

// HasFinalists reports whether finalists have been selected.
func (s *Session) HasFinalists() bool { return s.finalistsSet }

// Finalized reports whether final scores have been combined.
func (s *Session) Finalized() bool { return s.finalized }

// Finalists returns a snapshot of the finalists in selection order, or nil
// before selection.
func (s *Session) Finalists() []Contestant {
	if !s.finalistsSet {
		return nil
	}
	out := make([]Contestant, len(s.finalists))
	for i, pos := range s.finalists {
		out[i] = s.contestants[pos]
	}
	return out
}

// FinalistsByRegistration returns a snapshot of the finalists in registration
// order, or nil before selection. Finale and podium rankings use this order so
// that equal scores fall back to registration order.
func (s *Session) FinalistsByRegistration() []Contestant {
	if !s.finalistsSet {
		return nil
	}
	positions := slices.Sorted(slices.Values(s.finalists))
	out := make([]Contestant, len(positions))
	for i, pos := range positions {
		out[i] = s.contestants[pos]
	}
	return out
}

// Advance moves the session to next, which must be the immediate successor
// of the current stage. Leaving a phase requires that phase to be finished.
func (s *Session) Advance(next Stage) error {
	if s.stage.Terminal() || next != s.stage.Next() {
		return NewProtocolError(s.stage, "Advance",
			fmt.Sprintf("cannot move from %s to %s", s.stage, next))
	}

	switch next {
	case StageQualificationComplete:
		if s.roundsCompleted != s.limits.QualifyingRounds {
			return NewProtocolError(s.stage, "Advance",
				fmt.Sprintf("%d of %d qualifying rounds completed", s.roundsCompleted, s.limits.QualifyingRounds))
		}
	case StageFinalistsSelected:
		if !s.finalistsSet {
			return NewProtocolError(s.stage, "Advance", "finalists not selected")
		}
	case StageFinaleComplete:
		if !s.finalized {
			return NewProtocolError(s.stage, "Advance", "final scores not combined")
		}
	}

	s.stage = next
	return nil
}

// RecordQualifyingRound commits one qualification round. scores holds one
// entry per contestant in registration order; either all are applied or none.
func (s *Session) RecordQualifyingRound(scores []int) error {
	const op = "RecordQualifyingRound"
	if s.stage != StageQualifying {
		return NewProtocolError(s.stage, op, "not in qualifying stage")
	}
	if s.roundsCompleted >= s.limits.QualifyingRounds {
		return NewProtocolError(s.stage, op,
			fmt.Sprintf("all %d qualifying rounds already completed", s.limits.QualifyingRounds))
	}
	if len(scores) != len(s.contestants) {
		return NewProtocolError(s.stage, op,
			fmt.Sprintf("got %d scores for %d contestants", len(scores), len(s.contestants)))
	}

	for i, score := range scores {
		s.contestants[i] = ApplyRoundScore(s.contestants[i], score)
	}
	s.roundsCompleted++
	return nil
}

// SetFinalists fixes the finalist list. It may be called exactly once, after
// qualification completed, with contestants drawn from this session.
func (s *Session) SetFinalists(finalists []Contestant) error {
	const op = "SetFinalists"
	if s.finalistsSet {
		return NewProtocolError(s.stage, op, "finalists already selected")
	}
	if s.stage != StageQualificationComplete {
		return NewProtocolError(s.stage, op, "qualification not complete")
	}
	if len(finalists) == 0 {
		return NewProtocolError(s.stage, op, "no finalists given")
	}

	index := make(map[string]int, len(s.contestants))
	for i, c := range s.contestants {
		index[c.ID()] = i
	}

	positions := make([]int, 0, len(finalists))
	chosen := make(map[string]struct{}, len(finalists))
	for _, f := range finalists {
		pos, ok := index[f.ID()]
		if !ok {
			return NewProtocolError(s.stage, op, fmt.Sprintf("unknown contestant %s", f.ID()))
		}
		if _, dup := chosen[f.ID()]; dup {
			return NewProtocolError(s.stage, op, fmt.Sprintf("contestant %s selected twice", f.ID()))
		}
		chosen[f.ID()] = struct{}{}
		positions = append(positions, pos)
	}

	s.finalists = positions
	s.finalistsSet = true
	return nil
}

// RecordFinaleRound commits one finale round. scores holds one entry per
// finalist in selection order; either all are applied or none.
func (s *Session) RecordFinaleRound(scores []int) error {
	const op = "RecordFinaleRound"
	if !s.finalistsSet {
		return NewProtocolError(s.stage, op, "finalists not selected")
	}
	if s.stage != StageFinale {
		return NewProtocolError(s.stage, op, "not in finale stage")
	}
	if s.finaleRoundsCompleted >= s.limits.FinaleRounds {
		return NewProtocolError(s.stage, op,
			fmt.Sprintf("all %d finale rounds already completed", s.limits.FinaleRounds))
	}
	if len(scores) != len(s.finalists) {
		return NewProtocolError(s.stage, op,
			fmt.Sprintf("got %d scores for %d finalists", len(scores), len(s.finalists)))
	}

	for i, score := range scores {
		pos := s.finalists[i]
		s.contestants[pos] = ApplyFinaleScore(s.contestants[pos], score)
	}
	s.finaleRoundsCompleted++
	return nil
}

// Finalize combines the final score of every finalist. It is allowed once,
// after the last finale round.
func (s *Session) Finalize() error {
	const op = "Finalize"
	if s.finalized {
		return NewProtocolError(s.stage, op, "final scores already combined")
	}
	if s.stage != StageFinale || s.finaleRoundsCompleted != s.limits.FinaleRounds {
		return NewProtocolError(s.stage, op,
			fmt.Sprintf("%d of %d finale rounds completed", s.finaleRoundsCompleted, s.limits.FinaleRounds))
	}

	updated := slices.Clone(s.contestants)
	for _, pos := range s.finalists {
		c, err := CombineFinalScore(updated[pos])
		if err != nil {
			return err
		}
		updated[pos] = c
	}
	s.contestants = updated
	s.finalized = true
	return nil
}

// Podium ranks the finalists by final score. It is only available once final
// scores are combined.
func (s *Session) Podium() ([]Standing, error) {
	if !s.finalized {
		return nil, NewProtocolError(s.stage, "Podium", "final scores not combined")
	}
	return Standings(s.FinalistsByRegistration(), ByFinalScore), nil
}
