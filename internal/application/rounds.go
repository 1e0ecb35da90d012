package application

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/ahrav/go-arena/internal/domain"
	"github.com/ahrav/go-arena/internal/ports"
)

// RoundEngine plays qualification rounds. Each round contests one category,
// chosen by rotating over the configured category list, and asks the score
// generator for every contestant's score in registration order.
type RoundEngine struct {
	categories []string
	generator  ports.ScoreGenerator
	logger     *zap.Logger
}

// NewRoundEngine creates a qualification round engine. categories must not
// be empty; a nil logger disables logging.
func NewRoundEngine(categories []string, generator ports.ScoreGenerator, logger *zap.Logger) *RoundEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoundEngine{
		categories: slices.Clone(categories),
		generator:  generator,
		logger:     logger,
	}
}

// PlayRound plays the next qualification round of s and commits it.
// If any turn fails, or ctx is done before a turn starts, the round is
// aborted and nothing is recorded.
func (e *RoundEngine) PlayRound(ctx context.Context, s *domain.Session) (domain.RoundReport, error) {
	if s.Stage() != domain.StageQualifying {
		return domain.RoundReport{}, domain.NewProtocolError(s.Stage(), "PlayRound", "not in qualifying stage")
	}
	round := s.RoundsCompleted() + 1
	if round > s.Limits().QualifyingRounds {
		return domain.RoundReport{}, domain.NewProtocolError(s.Stage(), "PlayRound",
			fmt.Sprintf("all %d qualifying rounds already completed", s.Limits().QualifyingRounds))
	}

	report := domain.RoundReport{
		Phase:    domain.PhaseQualifying,
		Round:    round,
		Category: domain.CategoryForRound(round, e.categories),
	}

	turns, err := playTurns(ctx, e.generator, e.logger, report, s.Contestants(), nil)
	if err != nil {
		return domain.RoundReport{}, err
	}
	report.Turns = turns

	if err := s.RecordQualifyingRound(report.Scores()); err != nil {
		return domain.RoundReport{}, err
	}

	e.logger.Debug("qualifying round committed",
		zap.Int("round", round),
		zap.String("category", report.Category),
	)
	return report, nil
}

// playTurns asks gen for the score of each participant in order. bonus, when
// non-nil, returns the bonus added to a base score. The first failure stops
// the round and is returned as a *ports.ScoreError.
func playTurns(
	ctx context.Context,
	gen ports.ScoreGenerator,
	logger *zap.Logger,
	round domain.RoundReport,
	participants []domain.Contestant,
	bonus func() int,
) ([]domain.TurnScore, error) {
	turns := make([]domain.TurnScore, 0, len(participants))
	for i, c := range participants {
		slot := i + 1
		scoreErr := func(err error) *ports.ScoreError {
			return &ports.ScoreError{
				Category:     round.Category,
				Slot:         slot,
				ContestantID: c.ID(),
				Round:        round.Round,
				Err:          err,
			}
		}

		if err := ctx.Err(); err != nil {
			return nil, scoreErr(err)
		}

		base, err := gen.Score(ctx, round.Category, slot)
		if err != nil {
			logger.Error("contestant turn failed",
				zap.String("phase", string(round.Phase)),
				zap.Int("round", round.Round),
				zap.String("contestant_id", c.ID()),
				zap.Error(err),
			)
			return nil, scoreErr(err)
		}

		turn := domain.TurnScore{
			ContestantID: c.ID(),
			Name:         c.Name(),
			Slot:         slot,
			Base:         base,
		}
		if bonus != nil {
			turn.Bonus = bonus()
		}
		turn.Score = turn.Base + turn.Bonus
		turns = append(turns, turn)

		logger.Debug("contestant turn",
			zap.String("phase", string(round.Phase)),
			zap.Int("round", round.Round),
			zap.String("category", round.Category),
			zap.String("contestant_id", c.ID()),
			zap.Int("base", turn.Base),
			zap.Int("bonus", turn.Bonus),
		)
	}
	return turns, nil
}
