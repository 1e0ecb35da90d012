package ports

import (
	"context"

	"github.com/ahrav/go-arena/internal/domain"
)

// Observer receives tournament progress notifications. Observers are called
// synchronously from the orchestrator and must not block for long; they cannot
// influence the outcome.
type Observer interface {
	// StageEntered is called after every stage transition.
	StageEntered(ctx context.Context, tournamentID string, stage domain.Stage)

	// QualifyingRoundCompleted is called after a qualification round was
	// committed, with standings ranked by total score.
	QualifyingRoundCompleted(ctx context.Context, report domain.RoundReport, standings []domain.Standing)

	// QualificationCompleted receives the final qualification standings.
	QualificationCompleted(ctx context.Context, standings []domain.Standing)

	// FinalistsSelected receives the finalists in selection order, ranked by
	// total score.
	FinalistsSelected(ctx context.Context, finalists []domain.Standing)

	// FinaleRoundCompleted is called after a finale round was committed, with
	// finalist standings ranked by finale score.
	FinaleRoundCompleted(ctx context.Context, report domain.RoundReport, standings []domain.Standing)

	// WinnerDeclared receives the podium ranked by final score.
	WinnerDeclared(ctx context.Context, podium []domain.Standing)

	// Persisted is called once after the record was handed to the result
	// store. err is the store's failure, or nil.
	Persisted(ctx context.Context, record domain.Record, err error)
}

// NopObserver ignores every notification. Embed it to implement only the
// callbacks of interest.
type NopObserver struct{}

var _ Observer = NopObserver{}

func (NopObserver) StageEntered(context.Context, string, domain.Stage) {}

func (NopObserver) QualifyingRoundCompleted(context.Context, domain.RoundReport, []domain.Standing) {
}

func (NopObserver) QualificationCompleted(context.Context, []domain.Standing) {}

func (NopObserver) FinalistsSelected(context.Context, []domain.Standing) {}

func (NopObserver) FinaleRoundCompleted(context.Context, domain.RoundReport, []domain.Standing) {}

func (NopObserver) WinnerDeclared(context.Context, []domain.Standing) {}

func (NopObserver) Persisted(context.Context, domain.Record, error) {}

// Observers fans every notification out to each observer in order.
type Observers []Observer

var _ Observer = Observers(nil)

func (obs Observers) StageEntered(ctx context.Context, tournamentID string, stage domain.Stage) {
	for _, o := range obs {
		o.StageEntered(ctx, tournamentID, stage)
	}
}

func (obs Observers) QualifyingRoundCompleted(ctx context.Context, report domain.RoundReport, standings []domain.Standing) {
	for _, o := range obs {
		o.QualifyingRoundCompleted(ctx, report, standings)
	}
}

func (obs Observers) QualificationCompleted(ctx context.Context, standings []domain.Standing) {
	for _, o := range obs {
		o.QualificationCompleted(ctx, standings)
	}
}

func (obs Observers) FinalistsSelected(ctx context.Context, finalists []domain.Standing) {
	for _, o := range obs {
		o.FinalistsSelected(ctx, finalists)
	}
}

func (obs Observers) FinaleRoundCompleted(ctx context.Context, report domain.RoundReport, standings []domain.Standing) {
	for _, o := range obs {
		o.FinaleRoundCompleted(ctx, report, standings)
	}
}

func (obs Observers) WinnerDeclared(ctx context.Context, podium []domain.Standing) {
	for _, o := range obs {
		o.WinnerDeclared(ctx, podium)
	}
}

func (obs Observers) Persisted(ctx context.Context, record domain.Record, err error) {
	for _, o := range obs {
		o.Persisted(ctx, record, err)
	}
}

// Continuation is a synchronous suspension point between tournament steps,
// such as an operator confirming before the next round. The orchestrator
// blocks in Continue until it returns; a non-nil error aborts the tournament.
type Continuation interface {
	Continue(ctx context.Context, stage domain.Stage) error
}

// ContinuationFunc adapts an ordinary function to a Continuation.
type ContinuationFunc func(ctx context.Context, stage domain.Stage) error

// Continue calls f(ctx, stage).
func (f ContinuationFunc) Continue(ctx context.Context, stage domain.Stage) error { return f(ctx, stage) }

// NoPause is the non-interactive Continuation: it proceeds immediately unless
// ctx is done.
var NoPause Continuation = ContinuationFunc(func(ctx context.Context, _ domain.Stage) error {
	return ctx.Err()
})
