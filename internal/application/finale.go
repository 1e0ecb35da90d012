package application

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/ahrav/go-arena/internal/domain"
	"github.com/ahrav/go-arena/internal/ports"
)

// FinaleEngine plays the finale among the finalists. Finale rounds follow an
// explicit category sequence, one category per round, and every base score
// gets a bonus drawn from the configured range.
type FinaleEngine struct {
	sequence     []string
	descriptions []string
	bonusRange   domain.BonusRange
	generator    ports.ScoreGenerator
	bonus        ports.BonusGenerator
	logger       *zap.Logger
}

// NewFinaleEngine creates a finale engine. descriptions holds the challenge
// text of each round and may be shorter than sequence.
func NewFinaleEngine(
	sequence, descriptions []string,
	bonusRange domain.BonusRange,
	generator ports.ScoreGenerator,
	bonus ports.BonusGenerator,
	logger *zap.Logger,
) *FinaleEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinaleEngine{
		sequence:     slices.Clone(sequence),
		descriptions: slices.Clone(descriptions),
		bonusRange:   bonusRange,
		generator:    generator,
		bonus:        bonus,
		logger:       logger,
	}
}

// PlayRound plays the next finale round of s and commits it. Each finalist,
// in selection order, scores base + bonus. A generator failure aborts the
// round with nothing recorded; partial finale scores are never kept.
func (e *FinaleEngine) PlayRound(ctx context.Context, s *domain.Session) (domain.RoundReport, error) {
	if !s.HasFinalists() {
		return domain.RoundReport{}, domain.NewProtocolError(s.Stage(), "PlayRound", "finalists not selected")
	}
	if s.Stage() != domain.StageFinale {
		return domain.RoundReport{}, domain.NewProtocolError(s.Stage(), "PlayRound", "not in finale stage")
	}
	round := s.FinaleRoundsCompleted() + 1
	if round > len(e.sequence) || round > s.Limits().FinaleRounds {
		return domain.RoundReport{}, domain.NewProtocolError(s.Stage(), "PlayRound",
			fmt.Sprintf("no finale round %d scheduled", round))
	}

	report := domain.RoundReport{
		Phase:    domain.PhaseFinale,
		Round:    round,
		Category: domain.FinaleCategory(round, e.sequence),
	}
	if round <= len(e.descriptions) {
		report.Description = e.descriptions[round-1]
	}

	draw := func() int { return e.bonus.Bonus(e.bonusRange) }
	turns, err := playTurns(ctx, e.generator, e.logger, report, s.Finalists(), draw)
	if err != nil {
		return domain.RoundReport{}, err
	}
	report.Turns = turns

	if err := s.RecordFinaleRound(report.Scores()); err != nil {
		return domain.RoundReport{}, err
	}

	e.logger.Debug("finale round committed",
		zap.Int("round", round),
		zap.String("category", report.Category),
	)
	return report, nil
}

// Complete combines every finalist's final score as the flat sum of the
// qualification total and the finale total. It may be called once, after
// the last finale round.
func (e *FinaleEngine) Complete(s *domain.Session) error {
	return s.Finalize()
}
