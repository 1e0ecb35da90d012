package testutils

import (
	"context"
	"fmt"
	"sync"

	"github.com/ahrav/go-arena/internal/domain"
	"github.com/ahrav/go-arena/internal/ports"
)

var _ ports.Observer = (*RecordingObserver)(nil)

// RecordingObserver keeps every notification it receives.
type RecordingObserver struct {
	mu sync.Mutex

	// Events lists notifications in arrival order, e.g. "stage:QUALIFYING",
	// "qualifying:3", "finalists", "finale:1", "winner", "persisted".
	Events []string

	Stages            []domain.Stage
	QualifyingReports []domain.RoundReport
	FinaleReports     []domain.RoundReport
	// RoundStandings holds the standings passed with each round report,
	// qualifying and finale alike.
	RoundStandings [][]domain.Standing
	Qualification  []domain.Standing
	Finalists      []domain.Standing
	Podium         []domain.Standing
	Records        []domain.Record
	PersistErrs    []error
}

func (r *RecordingObserver) add(event string) { r.Events = append(r.Events, event) }

func (r *RecordingObserver) StageEntered(_ context.Context, _ string, stage domain.Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Stages = append(r.Stages, stage)
	r.add("stage:" + stage.String())
}

func (r *RecordingObserver) QualifyingRoundCompleted(_ context.Context, report domain.RoundReport, standings []domain.Standing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.QualifyingReports = append(r.QualifyingReports, report)
	r.RoundStandings = append(r.RoundStandings, standings)
	r.add(fmt.Sprintf("qualifying:%d", report.Round))
}

func (r *RecordingObserver) QualificationCompleted(_ context.Context, standings []domain.Standing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Qualification = standings
	r.add("qualification")
}

func (r *RecordingObserver) FinalistsSelected(_ context.Context, finalists []domain.Standing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Finalists = finalists
	r.add("finalists")
}

func (r *RecordingObserver) FinaleRoundCompleted(_ context.Context, report domain.RoundReport, standings []domain.Standing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FinaleReports = append(r.FinaleReports, report)
	r.RoundStandings = append(r.RoundStandings, standings)
	r.add(fmt.Sprintf("finale:%d", report.Round))
}

func (r *RecordingObserver) WinnerDeclared(_ context.Context, podium []domain.Standing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Podium = podium
	r.add("winner")
}

func (r *RecordingObserver) Persisted(_ context.Context, record domain.Record, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Records = append(r.Records, record)
	r.PersistErrs = append(r.PersistErrs, err)
	r.add("persisted")
}
