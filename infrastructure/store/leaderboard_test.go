package store

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadRecords parses rendered records back into summaries.
func TestReadRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRecord(&buf, testRecord("T1", place(1, "Ada", 912), place(2, "Mary - Jane", 880))))
	require.NoError(t, RenderRecord(&buf, testRecord("T2", place(1, "Grace", -5))))

	got, err := ReadRecords(&buf)
	require.NoError(t, err)

	want := []RecordSummary{
		{
			TournamentID: "T1",
			Date:         testStart,
			Contestants:  8,
			Rounds:       10,
			Champion:     "Ada",
			FinalScore:   912,
			Standings:    []SummaryStanding{{1, "Ada", 912}, {2, "Mary - Jane", 880}},
		},
		{
			TournamentID: "T2",
			Date:         testStart,
			Contestants:  8,
			Rounds:       10,
			Champion:     "Grace",
			FinalScore:   -5,
			Standings:    []SummaryStanding{{1, "Grace", -5}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadRecords() mismatch (-want +got):\n%s", diff)
	}
}

// TestReadRecords_Malformed reports the offending line.
func TestReadRecords_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad date", "Tournament ID: T1\nDate: yesterday\n", "line 2: date"},
		{"bad count", "Tournament ID: T1\nContestants: many\n", "line 2: contestants"},
		{"bad rounds", "Tournament ID: T1\n\nRounds: x\n", "line 3: rounds"},
		{"bad score", "Tournament ID: T1\nFinal Score: high\n", "line 2: final score"},
		{"rank overflow", "Tournament ID: T1\n99999999999999999999. Ada - 10 points\n", "line 2: standing rank"},
		{"score overflow", "Tournament ID: T1\n1. Ada - 99999999999999999999 points\n", "line 2: standing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRecords(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

// TestReadRecords_IgnoresPreamble skips lines before the first record.
func TestReadRecords_IgnoresPreamble(t *testing.T) {
	got, err := ReadRecords(strings.NewReader("garbage\nFinal Score: x\nTournament ID: T1\r\nRounds: 3\r\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "T1", got[0].TournamentID)
	assert.Equal(t, 3, got[0].Rounds)
}

// TestBuildLeaderboard verifies aggregation and ordering.
func TestBuildLeaderboard(t *testing.T) {
	summary := func(champion string, standings ...SummaryStanding) RecordSummary {
		return RecordSummary{Date: time.Time{}, Champion: champion, FinalScore: standings[0].Score, Standings: standings}
	}
	records := []RecordSummary{
		summary("Ada", SummaryStanding{1, "Ada", 300}, SummaryStanding{2, "Bob", 290}, SummaryStanding{3, "Cy", 200}),
		summary("Bob", SummaryStanding{1, "Bob", 250}, SummaryStanding{2, "Dee", 240}, SummaryStanding{3, "Ada", 100}),
		summary("Ada", SummaryStanding{1, "Ada", 180}, SummaryStanding{2, "Eve", 240}),
	}

	got := BuildLeaderboard(records)

	want := []LeaderboardEntry{
		{Name: "Ada", Titles: 2, BestScore: 300, Podiums: 3},
		{Name: "Bob", Titles: 1, BestScore: 290, Podiums: 2},
		{Name: "Dee", Titles: 0, BestScore: 240, Podiums: 1},
		{Name: "Eve", Titles: 0, BestScore: 240, Podiums: 1},
		{Name: "Cy", Titles: 0, BestScore: 200, Podiums: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildLeaderboard() mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, BuildLeaderboard(nil))
}
