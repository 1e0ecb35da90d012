package domain

import "time"

// Record is the persisted result of a completed tournament. It is appended
// once to the result log and never rewritten.
type Record struct {
	TournamentID    string
	StartedAt       time.Time
	ContestantCount int

	// Rounds is the number of qualification rounds played.
	Rounds int

	// Podium is the finalists ranked by final score.
	Podium []Standing
}

// NewRecord builds the persisted record of a session whose final scores have
// been combined.
func NewRecord(s *Session) (Record, error) {
	podium, err := s.Podium()
	if err != nil {
		return Record{}, err
	}
	return Record{
		TournamentID:    s.ID(),
		StartedAt:       s.StartedAt(),
		ContestantCount: s.Len(),
		Rounds:          s.RoundsCompleted(),
		Podium:          podium,
	}, nil
}

// Champion returns the first podium entry. The boolean is false for an empty
// podium.
func (r Record) Champion() (Standing, bool) {
	if len(r.Podium) == 0 {
		return Standing{}, false
	}
	return r.Podium[0], true
}
