package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-arena/internal/domain"
	"github.com/ahrav/go-arena/internal/ports"
)

var _ ports.Observer = (*OTelObserver)(nil)

const observerTracerName = "github.com/ahrav/go-arena/infrastructure/middleware"

// OTelObserver records each tournament stage as an OpenTelemetry span, a
// child of the span in the context handed to StageEntered. Rounds, the
// finalist cut and the podium become span events on the current stage span.
//
// An OTelObserver follows one tournament at a time and, like the
// orchestrator calling it, is not safe for concurrent use.
type OTelObserver struct {
	tracer trace.Tracer
	span   trace.Span
}

// NewOTelObserver creates an observer using tp, or the global tracer
// provider when tp is nil.
func NewOTelObserver(tp trace.TracerProvider) *OTelObserver {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &OTelObserver{tracer: tp.Tracer(observerTracerName)}
}

// StageEntered ends the previous stage span and starts one for stage.
func (o *OTelObserver) StageEntered(ctx context.Context, tournamentID string, stage domain.Stage) {
	o.Close()
	_, o.span = o.tracer.Start(ctx, "Tournament.Stage",
		trace.WithAttributes(
			attribute.String("arena.tournament_id", tournamentID),
			attribute.String("arena.stage", stage.String()),
		),
	)
}

// QualifyingRoundCompleted adds a round event to the stage span.
func (o *OTelObserver) QualifyingRoundCompleted(_ context.Context, report domain.RoundReport, standings []domain.Standing) {
	o.roundEvent(report, standings)
}

// QualificationCompleted records the qualification leader.
func (o *OTelObserver) QualificationCompleted(_ context.Context, standings []domain.Standing) {
	if o.span == nil || len(standings) == 0 {
		return
	}
	o.span.SetAttributes(
		attribute.String("arena.qualification.leader", standings[0].Contestant.ID()),
		attribute.Int("arena.qualification.leader_score", standings[0].Score),
	)
}

// FinalistsSelected records the finalist IDs.
func (o *OTelObserver) FinalistsSelected(_ context.Context, finalists []domain.Standing) {
	if o.span == nil {
		return
	}
	ids := make([]string, len(finalists))
	for i, f := range finalists {
		ids[i] = f.Contestant.ID()
	}
	o.span.AddEvent("finalists.selected", trace.WithAttributes(
		attribute.StringSlice("arena.finalists", ids),
	))
}

// FinaleRoundCompleted adds a round event to the stage span.
func (o *OTelObserver) FinaleRoundCompleted(_ context.Context, report domain.RoundReport, standings []domain.Standing) {
	o.roundEvent(report, standings)
}

// WinnerDeclared records the champion on the stage span.
func (o *OTelObserver) WinnerDeclared(_ context.Context, podium []domain.Standing) {
	if o.span == nil || len(podium) == 0 {
		return
	}
	o.span.AddEvent("winner.declared", trace.WithAttributes(
		attribute.String("arena.champion", podium[0].Contestant.ID()),
		attribute.Int("arena.final_score", podium[0].Score),
	))
}

// Persisted finishes the last stage span with the store's outcome.
func (o *OTelObserver) Persisted(_ context.Context, _ domain.Record, err error) {
	if o.span == nil {
		return
	}
	if err != nil {
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, "result persistence failed")
	} else {
		o.span.SetStatus(codes.Ok, "tournament persisted")
	}
	o.Close()
}

// Close ends the open stage span, if any. Call it when a tournament stops
// early so the span of the interrupted stage is exported.
func (o *OTelObserver) Close() {
	if o.span != nil {
		o.span.End()
		o.span = nil
	}
}

func (o *OTelObserver) roundEvent(report domain.RoundReport, standings []domain.Standing) {
	if o.span == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("arena.phase", string(report.Phase)),
		attribute.Int("arena.round", report.Round),
		attribute.String("arena.category", report.Category),
	}
	if len(standings) > 0 {
		attrs = append(attrs,
			attribute.String("arena.leader", standings[0].Contestant.ID()),
			attribute.Int("arena.leader_score", standings[0].Score),
		)
	}
	o.span.AddEvent("round.completed", trace.WithAttributes(attrs...))
}
