// Package application drives tournaments: it validates configuration, plays
// qualification and finale rounds through the score generator port and
// walks the tournament stage machine from INIT to PERSISTED.
package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ahrav/go-arena/internal/domain"
	"github.com/ahrav/go-arena/internal/ports"
)

const tracerName = "github.com/ahrav/go-arena/internal/application"

// Result is the outcome of a completed tournament.
type Result struct {
	// Record is the persisted form of the result.
	Record domain.Record

	// Champion is the podium's first entry.
	Champion domain.Standing

	// Qualification is the final qualification standings by total score.
	Qualification []domain.Standing

	// Podium is the finalists ranked by final score.
	Podium []domain.Standing

	// Contestants is every contestant's final state in registration order.
	Contestants []domain.Contestant
}

// Orchestrator runs one tournament per call to Run, driving the stage
// machine strictly forward. It is not safe to call Run concurrently on the
// same Orchestrator; separate tournaments need separate orchestrators.
type Orchestrator struct {
	cfg TournamentConfig

	generator ports.ScoreGenerator
	bonus     ports.BonusGenerator
	store     ports.ResultStore
	observers ports.Observers
	pause     ports.Continuation
	logger    *zap.Logger
	tracer    trace.Tracer
	now       func() time.Time
	newID     func(time.Time) string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObservers appends progress observers, notified in the given order.
func WithObservers(observers ...ports.Observer) Option {
	return func(o *Orchestrator) { o.observers = append(o.observers, observers...) }
}

// WithContinuation sets the pause point called between tournament steps.
func WithContinuation(c ports.Continuation) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.pause = c
		}
	}
}

// WithResultStore sets where the tournament record is appended.
func WithResultStore(store ports.ResultStore) Option {
	return func(o *Orchestrator) { o.store = store }
}

// WithBonusGenerator sets the source of finale bonuses.
func WithBonusGenerator(b ports.BonusGenerator) Option {
	return func(o *Orchestrator) {
		if b != nil {
			o.bonus = b
		}
	}
}

// WithClock sets the time source used for the start timestamp.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator sets how tournament ids are derived from the start time.
func WithIDGenerator(newID func(time.Time) string) Option {
	return func(o *Orchestrator) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider. The global
// provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Orchestrator) {
		if tp != nil {
			o.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewTournamentID returns "T<unix seconds>-<8 hex characters>".
func NewTournamentID(start time.Time) string {
	return fmt.Sprintf("T%d-%s", start.Unix(), uuid.NewString()[:8])
}

// randomBonus draws uniformly from the inclusive range using the runtime's
// random source.
var randomBonus ports.BonusFunc = func(r domain.BonusRange) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rand.IntN(r.Max-r.Min+1)
}

// NewOrchestrator validates cfg and builds an orchestrator around the given
// score generator. Configuration errors are returned here, before any round
// is played, and match domain.ErrInvalidConfiguration.
func NewOrchestrator(cfg TournamentConfig, generator ports.ScoreGenerator, opts ...Option) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if generator == nil {
		return nil, fmt.Errorf("score generator: %w: %w", domain.ErrEmptyValue, domain.ErrInvalidConfiguration)
	}

	o := &Orchestrator{
		cfg:       cfg.Clone(),
		generator: generator,
		bonus:     randomBonus,
		pause:     ports.NoPause,
		logger:    zap.NewNop(),
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
		newID:     NewTournamentID,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Config returns a copy of the orchestrator's configuration.
func (o *Orchestrator) Config() TournamentConfig { return o.cfg.Clone() }

// Run plays one complete tournament.
//
// A score generator failure, a protocol violation, cancellation of ctx or a
// continuation error aborts the tournament; the error is returned with a nil
// Result and the winner is never declared. A failure to append the record to
// the result store does not invalidate the outcome: Run then returns the
// complete Result together with a *ports.PersistenceError.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	start := o.now()
	id := o.newID(start)
	logger := o.logger.With(zap.String("tournament_id", id))

	ctx, span := o.tracer.Start(ctx, "Tournament.Run", trace.WithAttributes(
		attribute.String("tournament.id", id),
		attribute.Int("tournament.qualifying_rounds", o.cfg.TotalQualifyingRounds),
		attribute.Int("tournament.finale_rounds", o.cfg.FinaleRounds),
	))
	defer span.End()

	fail := func(err error) (*Result, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("tournament aborted", zap.Error(err))
		return nil, err
	}

	session, err := domain.NewSession(id, start, o.register(), o.cfg.Limits())
	if err != nil {
		return fail(err)
	}
	span.SetAttributes(attribute.Int("tournament.contestants", session.Len()))
	logger.Info("tournament created", zap.Int("contestants", session.Len()))
	o.observers.StageEntered(ctx, id, session.Stage())

	t := &run{o: o, s: session, logger: logger}
	steps := []func(context.Context) error{
		t.qualify,
		t.completeQualification,
		t.selectFinalists,
		t.playFinale,
		t.completeFinale,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return fail(err)
		}
	}

	result, err := t.declareWinner(ctx)
	if err != nil {
		return fail(err)
	}

	if err := t.persist(ctx, result.Record); err != nil {
		var perr *ports.PersistenceError
		if !errors.As(err, &perr) {
			return fail(err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "result not persisted")
		return result, err
	}

	span.SetStatus(codes.Ok, "")
	return result, nil
}

// register creates the contestants in registration order.
func (o *Orchestrator) register() []domain.Contestant {
	n := o.cfg.EffectiveContestantCount()
	out := make([]domain.Contestant, n)
	for i := range out {
		pos := i + 1
		out[i] = domain.NewContestant(domain.ContestantID(pos), o.cfg.ContestantName(pos))
	}
	return out
}

// run holds the state of a single Run call.
type run struct {
	o      *Orchestrator
	s      *domain.Session
	logger *zap.Logger
}

func (t *run) advance(ctx context.Context, next domain.Stage) error {
	if err := t.s.Advance(next); err != nil {
		return err
	}
	t.logger.Info("stage entered", zap.Stringer("stage", next))
	t.o.observers.StageEntered(ctx, t.s.ID(), next)
	return nil
}

func (t *run) pause(ctx context.Context) error {
	if err := t.o.pause.Continue(ctx, t.s.Stage()); err != nil {
		return fmt.Errorf("paused at %s: %w", t.s.Stage(), err)
	}
	return nil
}

func (t *run) qualify(ctx context.Context) error {
	if err := t.advance(ctx, domain.StageQualifying); err != nil {
		return err
	}

	engine := NewRoundEngine(t.o.cfg.Categories, t.o.generator, t.logger)
	n := t.o.cfg.TotalQualifyingRounds
	for r := 1; r <= n; r++ {
		report, err := engine.PlayRound(ctx, t.s)
		if err != nil {
			return fmt.Errorf("qualifying round %d: %w", r, err)
		}
		t.o.observers.QualifyingRoundCompleted(ctx, report,
			domain.Standings(t.s.Contestants(), domain.ByTotalScore))
		if r < n {
			if err := t.pause(ctx); err != nil {
				return err
			}
		}
	}
	return t.pause(ctx)
}

func (t *run) completeQualification(ctx context.Context) error {
	if err := t.advance(ctx, domain.StageQualificationComplete); err != nil {
		return err
	}
	standings := domain.Standings(t.s.Contestants(), domain.ByTotalScore)
	t.o.observers.QualificationCompleted(ctx, standings)
	leader := standings[0]
	t.logger.Info("qualification complete",
		zap.String("leader", leader.Contestant.ID()),
		zap.Int("leader_score", leader.Score),
	)
	return t.pause(ctx)
}

func (t *run) selectFinalists(ctx context.Context) error {
	finalists := domain.SelectFinalists(t.s.Contestants(), t.o.cfg.FinalistCount)
	if err := t.s.SetFinalists(finalists); err != nil {
		return err
	}
	if err := t.advance(ctx, domain.StageFinalistsSelected); err != nil {
		return err
	}
	t.o.observers.FinalistsSelected(ctx, domain.Standings(t.s.Finalists(), domain.ByTotalScore))
	return t.pause(ctx)
}

func (t *run) playFinale(ctx context.Context) error {
	if err := t.advance(ctx, domain.StageFinale); err != nil {
		return err
	}

	descriptions := make([]string, t.o.cfg.FinaleRounds)
	for i := range descriptions {
		descriptions[i] = t.o.cfg.FinaleDescription(i + 1)
	}
	engine := NewFinaleEngine(t.o.cfg.FinaleCategories, descriptions,
		t.o.cfg.FinaleBonus, t.o.generator, t.o.bonus, t.logger)

	m := t.o.cfg.FinaleRounds
	for r := 1; r <= m; r++ {
		report, err := engine.PlayRound(ctx, t.s)
		if err != nil {
			return fmt.Errorf("finale round %d: %w", r, err)
		}
		t.o.observers.FinaleRoundCompleted(ctx, report,
			domain.Standings(t.s.FinalistsByRegistration(), domain.ByFinaleScore))
		if r < m {
			if err := t.pause(ctx); err != nil {
				return err
			}
		}
	}

	return engine.Complete(t.s)
}

func (t *run) completeFinale(ctx context.Context) error {
	if err := t.advance(ctx, domain.StageFinaleComplete); err != nil {
		return err
	}
	return t.pause(ctx)
}

func (t *run) declareWinner(ctx context.Context) (*Result, error) {
	record, err := domain.NewRecord(t.s)
	if err != nil {
		return nil, err
	}
	if err := t.advance(ctx, domain.StageWinnerDeclared); err != nil {
		return nil, err
	}

	champion, _ := record.Champion()
	t.o.observers.WinnerDeclared(ctx, record.Podium)
	t.logger.Info("winner declared",
		zap.String("champion_id", champion.Contestant.ID()),
		zap.String("champion", champion.Contestant.Name()),
		zap.Int("final_score", champion.Score),
	)

	return &Result{
		Record:        record,
		Champion:      champion,
		Qualification: domain.Standings(t.s.Contestants(), domain.ByTotalScore),
		Podium:        record.Podium,
		Contestants:   t.s.Contestants(),
	}, nil
}

// persist appends the record once. The stage reaches PERSISTED whether or not
// the store succeeded; a store failure is returned as a
// *ports.PersistenceError.
func (t *run) persist(ctx context.Context, record domain.Record) error {
	var storeErr error
	if t.o.store != nil {
		if err := t.o.store.Append(ctx, record); err != nil {
			var perr *ports.PersistenceError
			if errors.As(err, &perr) {
				storeErr = err
			} else {
				storeErr = ports.NewPersistenceError(record.TournamentID, err)
			}
			t.logger.Error("failed to persist tournament record", zap.Error(err))
		}
	}

	if err := t.advance(ctx, domain.StagePersisted); err != nil {
		return err
	}
	t.o.observers.Persisted(ctx, record, storeErr)
	return storeErr
}
