package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-arena/infrastructure/store"
	"github.com/ahrav/go-arena/internal/domain"
)

// TestPromptContinuation covers continue, quit and end of input.
func TestPromptContinuation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"enter continues", "\n", nil},
		{"any text continues", "go\n", nil},
		{"q quits", "q\n", errQuit},
		{"Q quits", "  Q \n", errQuit},
		{"end of input quits", "", errQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := newPromptContinuation(strings.NewReader(tt.input), &out)

			err := p.Continue(context.Background(), domain.StageQualifying)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, out.String(), "[QUALIFYING] press Enter")
		})
	}
}

// TestPromptContinuation_Canceled returns the context error.
func TestPromptContinuation_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Nothing is ever written, so the read stays pending.
	r, w := io.Pipe()
	defer w.Close()

	err := newPromptContinuation(r, &bytes.Buffer{}).Continue(ctx, domain.StageFinale)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestConsoleObserver_QualifyingRound prints averages to one decimal.
func TestConsoleObserver_QualifyingRound(t *testing.T) {
	var out bytes.Buffer
	obs := newConsoleObserver(&out, 10, 3, "results.txt")

	c := domain.ApplyRoundScore(domain.ApplyRoundScore(domain.NewContestant("C001", "Ada"), 50), 75)
	report := domain.RoundReport{
		Phase:    domain.PhaseQualifying,
		Round:    2,
		Category: "graph",
		Turns:    []domain.TurnScore{{ContestantID: "C001", Name: "Ada", Slot: 1, Base: 75, Score: 75}},
	}
	obs.QualifyingRoundCompleted(context.Background(), report, []domain.Standing{{Rank: 1, Contestant: c, Score: 125}})

	text := out.String()
	assert.Contains(t, text, "ROUND  2 / 10  Category: graph")
	require.Contains(t, text, "Ada")
	line := text[strings.Index(text, "1 "):]
	assert.Regexp(t, `^1\s+C001\s+Ada\s+75\s+125\s+62\.5`, line)
}

// TestPrintLeaderboard covers the table and the empty log.
func TestPrintLeaderboard(t *testing.T) {
	var out bytes.Buffer
	printLeaderboard(&out, nil, 0)
	assert.Equal(t, "No tournaments recorded yet.\n", out.String())

	out.Reset()
	printLeaderboard(&out, []store.LeaderboardEntry{
		{Name: "Ada", Titles: 2, BestScore: 300, Podiums: 3},
		{Name: "Bob", Titles: 1, BestScore: 290, Podiums: 2},
	}, 1)
	assert.Contains(t, out.String(), "Ada")
	assert.NotContains(t, out.String(), "Bob")
}
