package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// pool builds contestants C001.. whose qualification total is the given value.
func pool(totals ...int) []Contestant {
	out := make([]Contestant, len(totals))
	for i, total := range totals {
		out[i] = ApplyRoundScore(NewContestant(ContestantID(i+1), DefaultContestantName(i+1)), total)
	}
	return out
}

func ids(contestants []Contestant) []string {
	out := make([]string, len(contestants))
	for i, c := range contestants {
		out[i] = c.ID()
	}
	return out
}

func TestRank_ByTotalScore(t *testing.T) {
	in := pool(30, 50, 10, 40)

	got := Rank(in, ByTotalScore)

	if diff := cmp.Diff([]string{"C002", "C004", "C001", "C003"}, ids(got)); diff != "" {
		t.Errorf("ranking mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"C001", "C002", "C003", "C004"}, ids(in), "input must not be reordered")
}

// TestRank_StableForEveryKey verifies that equal scores keep input order under
// each key used by the tournament.
func TestRank_StableForEveryKey(t *testing.T) {
	build := func() []Contestant {
		cs := pool(50, 50, 50)
		for i := range cs {
			cs[i] = ApplyFinaleScore(cs[i], 20)
			cs[i], _ = CombineFinalScore(cs[i])
		}
		return cs
	}

	keys := map[string]ScoreKey{
		"total":  ByTotalScore,
		"finale": ByFinaleScore,
		"final":  ByFinalScore,
	}
	for name, key := range keys {
		t.Run(name, func(t *testing.T) {
			got := Rank(build(), key)
			assert.Equal(t, []string{"C001", "C002", "C003"}, ids(got))
		})
	}
}

func TestByFinalScore_Uncombined(t *testing.T) {
	c := ApplyRoundScore(NewContestant("C001", "Ada"), 10)
	assert.Zero(t, ByFinalScore(c))
}

func TestStandings(t *testing.T) {
	got := Standings(pool(10, 30, 20), ByTotalScore)

	want := []struct {
		rank  int
		id    string
		score int
	}{
		{1, "C002", 30},
		{2, "C003", 20},
		{3, "C001", 10},
	}
	assert.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.rank, got[i].Rank)
		assert.Equal(t, w.id, got[i].Contestant.ID())
		assert.Equal(t, w.score, got[i].Score)
	}
}

func TestSelectFinalists(t *testing.T) {
	tests := []struct {
		name   string
		totals []int
		k      int
		want   []string
	}{
		{
			name:   "top three of five",
			totals: []int{100, 90, 80, 70, 60},
			k:      3,
			want:   []string{"C001", "C002", "C003"},
		},
		{
			name:   "unsorted input",
			totals: []int{60, 100, 70, 90, 80},
			k:      3,
			want:   []string{"C002", "C004", "C005"},
		},
		{
			name:   "exactly k contestants",
			totals: []int{5, 15, 10},
			k:      3,
			want:   []string{"C002", "C003", "C001"},
		},
		{
			name:   "fewer than k contestants",
			totals: []int{1, 2},
			k:      3,
			want:   []string{"C002", "C001"},
		},
		{
			name:   "ties resolved by registration order",
			totals: []int{10, 20, 20, 20},
			k:      2,
			want:   []string{"C002", "C003"},
		},
		{
			name:   "non-positive k",
			totals: []int{1, 2},
			k:      0,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectFinalists(pool(tt.totals...), tt.k)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("finalists mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
