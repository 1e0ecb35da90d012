package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ahrav/go-arena/internal/ports"
	"github.com/ahrav/go-arena/internal/testutils"
)

// blockingGenerator waits until its context ends.
var blockingGenerator = ports.ScoreGeneratorFunc(func(ctx context.Context, _ string, _ int) (int, error) {
	<-ctx.Done()
	return 0, ctx.Err()
})

// TestChain_Order verifies that the first middleware listed is the outermost.
func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next ports.ScoreGenerator) ports.ScoreGenerator {
			return ports.ScoreGeneratorFunc(func(ctx context.Context, category string, slot int) (int, error) {
				order = append(order, name)
				return next.Score(ctx, category, slot)
			})
		}
	}

	gen := Chain(testutils.NewMockScoreGenerator(9), tag("outer"), tag("middle"), tag("inner"))
	score, err := gen.Score(context.Background(), "sorting", 1)

	require.NoError(t, err)
	assert.Equal(t, 9, score)
	assert.Equal(t, []string{"outer", "middle", "inner"}, order)
}

// TestTimeoutMiddleware covers the turn deadline and caller cancellation.
func TestTimeoutMiddleware(t *testing.T) {
	t.Run("deadline exceeded", func(t *testing.T) {
		gen := TimeoutMiddleware(10 * time.Millisecond)(blockingGenerator)

		_, err := gen.Score(context.Background(), "graph", 2)
		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrTimeout)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "graph turn at slot 2")
	})

	t.Run("caller canceled", func(t *testing.T) {
		gen := TimeoutMiddleware(time.Minute)(blockingGenerator)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := gen.Score(ctx, "graph", 1)
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ports.ErrTimeout)
	})

	t.Run("fast turn passes", func(t *testing.T) {
		gen := TimeoutMiddleware(time.Minute)(testutils.NewMockScoreGenerator(4))
		score, err := gen.Score(context.Background(), "graph", 1)
		require.NoError(t, err)
		assert.Equal(t, 4, score)
	})

	t.Run("disabled", func(t *testing.T) {
		mock := testutils.NewMockScoreGenerator()
		assert.Same(t, mock, TimeoutMiddleware(0)(mock))
	})
}

// TestRateLimitMiddleware_Canceled verifies that a canceled wait is reported
// as a rate limit failure.
func TestRateLimitMiddleware_Canceled(t *testing.T) {
	mock := testutils.NewMockScoreGenerator(1)
	gen := RateLimitMiddleware(1, 1)(mock)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Score(ctx, "sorting", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "rate limit")
	assert.Zero(t, mock.CallCount())
}

// TestPacingMiddleware verifies that consecutive turns are spaced out.
func TestPacingMiddleware(t *testing.T) {
	mock := testutils.NewMockScoreGenerator()
	assert.Same(t, mock, PacingMiddleware(0)(mock))

	gen := PacingMiddleware(20 * time.Millisecond)(mock)
	start := time.Now()
	for slot := 1; slot <= 3; slot++ {
		_, err := gen.Score(context.Background(), "sorting", slot)
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)
	assert.Equal(t, 3, mock.CallCount())
}

// TestMetricsMiddleware verifies the latency, status and score metrics.
func TestMetricsMiddleware(t *testing.T) {
	metrics := &testutils.RecordingMetrics{}
	mock := testutils.NewMockScoreGenerator(70)
	mock.FailAt = 2
	gen := MetricsMiddleware(metrics)(mock)

	score, err := gen.Score(context.Background(), "sorting", 1)
	require.NoError(t, err)
	assert.Equal(t, 70, score)

	_, err = gen.Score(context.Background(), "sorting", 2)
	require.Error(t, err)

	_, err = MetricsMiddleware(metrics)(TimeoutMiddleware(time.Millisecond)(blockingGenerator)).
		Score(context.Background(), "graph", 1)
	require.ErrorIs(t, err, ports.ErrTimeout)

	assert.Equal(t, 1.0, metrics.CounterTotal(ports.MetricTurnsTotal, map[string]string{"category": "sorting", "status": "success"}))
	assert.Equal(t, 1.0, metrics.CounterTotal(ports.MetricTurnsTotal, map[string]string{"category": "sorting", "status": "error"}))
	assert.Equal(t, 1.0, metrics.CounterTotal(ports.MetricTurnsTotal, map[string]string{"category": "graph", "status": "timeout"}))
	assert.Len(t, metrics.Latencies, 3)

	require.Len(t, metrics.Histograms, 1, "only successful turns record a score")
	assert.Equal(t, ports.MetricTurnScore, metrics.Histograms[0].Metric)
	assert.Equal(t, 70.0, metrics.Histograms[0].Value)
}

// TestMetricsMiddleware_NilCollector passes turns through untouched.
func TestMetricsMiddleware_NilCollector(t *testing.T) {
	gen := MetricsMiddleware(nil)(testutils.NewMockScoreGenerator(3))
	score, err := gen.Score(context.Background(), "sorting", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, score)
}

// TestTracingMiddleware verifies one span per turn with its attributes and
// error status.
func TestTracingMiddleware(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	mock := testutils.NewMockScoreGenerator(55)
	mock.FailAt = 2
	mock.Err = errors.New("runner crashed")
	gen := TracingMiddleware(provider.Tracer("test"))(mock)

	_, err := gen.Score(context.Background(), "hashing", 1)
	require.NoError(t, err)
	_, err = gen.Score(context.Background(), "hashing", 2)
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "ScoreGenerator.Score", spans[0].Name())
	attrs := attribute.NewSet(spans[0].Attributes()...)
	category, ok := attrs.Value("arena.category")
	require.True(t, ok)
	assert.Equal(t, "hashing", category.AsString())
	score, ok := attrs.Value("arena.score")
	require.True(t, ok)
	assert.Equal(t, int64(55), score.AsInt64())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "runner crashed", spans[1].Status().Description)
}
