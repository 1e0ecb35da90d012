package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/ahrav/go-arena/infrastructure/middleware"
	"github.com/ahrav/go-arena/infrastructure/scoring"
	"github.com/ahrav/go-arena/infrastructure/store"
	"github.com/ahrav/go-arena/internal/application"
	"github.com/ahrav/go-arena/internal/ports"
)

// runOptions carries the command line of "arena run".
type runOptions struct {
	configPath  string
	seed        uint64
	contestants int
	scriptPath  string
	randomNames bool
	interactive bool
	metricsAddr string
	resultsPath string
}

// loadConfig reads the configuration file, if any, and applies command line
// overrides on top of it.
func loadConfig(ctx context.Context, opts runOptions) (application.TournamentConfig, error) {
	cfg := application.DefaultTournamentConfig()
	if opts.configPath != "" {
		loaded, err := application.NewConfigLoader().LoadFromFile(ctx, opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if opts.seed != 0 {
		cfg.Scoring.Seed = opts.seed
	}
	if opts.contestants != 0 {
		cfg.ContestantCount = opts.contestants
	}
	if opts.scriptPath != "" {
		cfg.Scoring.ScriptPath = opts.scriptPath
	}
	if opts.randomNames {
		cfg.ContestantNames = fakeNames(cfg.Scoring.Seed, cfg.ContestantNames, cfg.EffectiveContestantCount())
	}
	return cfg, cfg.Validate()
}

// fakeNames fills names up to n with distinct generated names. Configured
// names are kept.
func fakeNames(seed uint64, names []string, n int) []string {
	faker := gofakeit.New(seed)
	out := append([]string(nil), names...)
	seen := make(map[string]bool, n)
	for _, name := range out {
		seen[name] = true
	}
	for len(out) < n {
		name := faker.FirstName() + " " + faker.LastName()
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// validatingGenerator is a score generator that can check a category list
// before the first turn.
type validatingGenerator interface {
	ports.ScoreGenerator
	Validate(categories []string) error
}

// newGenerator builds the score generator selected by cfg.
func newGenerator(cfg application.TournamentConfig) (validatingGenerator, error) {
	if cfg.Scoring.ScriptPath != "" {
		sheet, err := scoring.LoadScoreSheetFile(cfg.Scoring.ScriptPath)
		if err != nil {
			return nil, err
		}
		return scoring.NewScriptedGenerator(sheet), nil
	}
	return scoring.NewSimulatedGenerator(cfg.Scoring.Seed, scoring.DefaultProfiles())
}

// serveMetrics exposes reg on addr until ctx ends.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger *zap.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", ln.Addr().String()))

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}, nil
}

// runTournament wires the adapters around the orchestrator and plays one
// tournament, printing the scoreboard to out.
func runTournament(ctx context.Context, opts runOptions, logger *zap.Logger, in io.Reader, out io.Writer) error {
	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	base, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	if err := base.Validate(slices.Concat(cfg.Categories, cfg.FinaleCategories)); err != nil {
		return fmt.Errorf("score generator: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewPrometheusMetrics(reg)
	if opts.metricsAddr != "" {
		stop, err := serveMetrics(ctx, opts.metricsAddr, reg, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	generator := scoring.Chain(base,
		scoring.TracingMiddleware(otel.Tracer("github.com/ahrav/go-arena/cmd/arena")),
		scoring.MetricsMiddleware(metrics),
		scoring.PacingMiddleware(time.Duration(cfg.Scoring.TurnDelayMS)*time.Millisecond),
		scoring.TimeoutMiddleware(time.Duration(cfg.Scoring.TurnTimeoutMS)*time.Millisecond),
	)

	results := store.NewResultLog(opts.resultsPath)
	spans := middleware.NewOTelObserver(nil)
	defer spans.Close()

	var pause ports.Continuation = ports.NoPause
	if opts.interactive {
		pause = newPromptContinuation(in, out)
	}

	orch, err := application.NewOrchestrator(cfg, generator,
		application.WithLogger(logger),
		application.WithBonusGenerator(scoring.NewUniformBonus(cfg.Scoring.Seed)),
		application.WithResultStore(results),
		application.WithContinuation(pause),
		application.WithObservers(
			newConsoleObserver(out, cfg.TotalQualifyingRounds, cfg.FinaleRounds, results.Path()),
			middleware.NewMetricsObserver(metrics),
			spans,
		),
	)
	if err != nil {
		return err
	}

	result, err := orch.Run(ctx)
	var perr *ports.PersistenceError
	if errors.As(err, &perr) && result != nil {
		logger.Warn("tournament result not saved", zap.Error(err))
		return nil
	}
	return exitError(err)
}
