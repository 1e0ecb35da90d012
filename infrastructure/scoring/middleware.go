package scoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/ahrav/go-arena/internal/ports"
)

// Middleware wraps a ScoreGenerator to add cross-cutting behavior such as
// pacing, deadlines, metrics and tracing without touching the generator.
type Middleware func(ports.ScoreGenerator) ports.ScoreGenerator

// Chain wraps gen with mws. Middleware is applied in reverse order so the
// first one listed is the outermost.
func Chain(gen ports.ScoreGenerator, mws ...Middleware) ports.ScoreGenerator {
	for i := len(mws) - 1; i >= 0; i-- {
		gen = mws[i](gen)
	}
	return gen
}

// rateLimitedGenerator throttles turns with a token bucket.
type rateLimitedGenerator struct {
	next    ports.ScoreGenerator
	limiter *rate.Limiter
}

// RateLimitMiddleware limits turns to limit per second with the given burst.
func RateLimitMiddleware(limit rate.Limit, burst int) Middleware {
	limiter := rate.NewLimiter(limit, burst)

	return func(next ports.ScoreGenerator) ports.ScoreGenerator {
		return &rateLimitedGenerator{next: next, limiter: limiter}
	}
}

// PacingMiddleware spaces consecutive turns at least delay apart, which
// gives a watching audience time to follow the scoreboard. A non-positive
// delay disables pacing.
func PacingMiddleware(delay time.Duration) Middleware {
	if delay <= 0 {
		return func(next ports.ScoreGenerator) ports.ScoreGenerator { return next }
	}
	return RateLimitMiddleware(rate.Every(delay), 1)
}

// Score waits for a token before forwarding the turn.
func (r *rateLimitedGenerator) Score(ctx context.Context, category string, slot int) (int, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit: %w", err)
	}
	return r.next.Score(ctx, category, slot)
}

// timeoutGenerator bounds the duration of a single turn.
type timeoutGenerator struct {
	next    ports.ScoreGenerator
	timeout time.Duration
}

// TimeoutMiddleware fails a turn that takes longer than timeout with an
// error matching ports.ErrTimeout. A non-positive timeout disables it.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next ports.ScoreGenerator) ports.ScoreGenerator {
		if timeout <= 0 {
			return next
		}
		return &timeoutGenerator{next: next, timeout: timeout}
	}
}

// Score runs the turn under its own deadline. Cancellation coming from the
// caller's context is returned unchanged.
func (t *timeoutGenerator) Score(ctx context.Context, category string, slot int) (int, error) {
	tctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	score, err := t.next.Score(tctx, category, slot)
	if err != nil && ctx.Err() == nil && errors.Is(tctx.Err(), context.DeadlineExceeded) {
		return 0, fmt.Errorf("%w: %s turn at slot %d exceeded %s: %w",
			ports.ErrTimeout, category, slot, t.timeout, err)
	}
	return score, err
}

// metricsGenerator records turn latency, outcome and score.
type metricsGenerator struct {
	next      ports.ScoreGenerator
	collector ports.MetricsCollector
}

// MetricsMiddleware reports every turn to collector.
func MetricsMiddleware(collector ports.MetricsCollector) Middleware {
	return func(next ports.ScoreGenerator) ports.ScoreGenerator {
		return &metricsGenerator{next: next, collector: collector}
	}
}

// Score forwards the turn and records its latency, status and score.
func (m *metricsGenerator) Score(ctx context.Context, category string, slot int) (int, error) {
	start := time.Now()
	score, err := m.next.Score(ctx, category, slot)
	if m.collector == nil {
		return score, err
	}

	labels := map[string]string{"category": category, "status": turnStatus(err)}
	m.collector.RecordLatency(ports.MetricTurnLatency, time.Since(start), labels)
	m.collector.RecordCounter(ports.MetricTurnsTotal, 1, labels)
	if err == nil {
		m.collector.RecordHistogram(ports.MetricTurnScore, float64(score), map[string]string{"category": category})
	}
	return score, err
}

func turnStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ports.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}

// tracedGenerator opens one span per turn.
type tracedGenerator struct {
	next   ports.ScoreGenerator
	tracer trace.Tracer
}

// TracingMiddleware records every turn as a span from tracer.
func TracingMiddleware(tracer trace.Tracer) Middleware {
	return func(next ports.ScoreGenerator) ports.ScoreGenerator {
		return &tracedGenerator{next: next, tracer: tracer}
	}
}

// Score forwards the turn inside a "ScoreGenerator.Score" span.
func (t *tracedGenerator) Score(ctx context.Context, category string, slot int) (int, error) {
	ctx, span := t.tracer.Start(ctx, "ScoreGenerator.Score",
		trace.WithAttributes(
			attribute.String("arena.category", category),
			attribute.Int("arena.slot", slot),
		),
	)
	defer span.End()

	score, err := t.next.Score(ctx, category, slot)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return score, err
	}
	span.SetAttributes(attribute.Int("arena.score", score))
	return score, nil
}
