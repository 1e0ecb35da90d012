package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContestantIdentity(t *testing.T) {
	assert.Equal(t, "C001", ContestantID(1))
	assert.Equal(t, "C012", ContestantID(12))
	assert.Equal(t, "Contestant_3", DefaultContestantName(3))

	c := NewContestant("C001", "Ada")
	assert.Equal(t, "C001", c.ID())
	assert.Equal(t, "Ada", c.Name())
	assert.Zero(t, c.RoundsPlayed())
	assert.Zero(t, c.AverageScore(), "average before any round is zero")

	_, ok := c.FinalScore()
	assert.False(t, ok, "final score is undefined before combination")
}

// TestApplyRoundScore_TotalTracksSum verifies that the total always equals the
// sum of recorded scores, negative scores included.
func TestApplyRoundScore_TotalTracksSum(t *testing.T) {
	scores := []int{10, -5, 0, 42, 7}

	c := NewContestant("C001", "Ada")
	want := 0
	for i, s := range scores {
		c = ApplyRoundScore(c, s)
		want += s

		assert.Equal(t, want, c.TotalScore(), "after round %d", i+1)
		assert.Equal(t, i+1, c.RoundsPlayed())
	}

	assert.Equal(t, scores, c.RoundScores())
	assert.InDelta(t, 10.8, c.AverageScore(), 1e-9)
}

func TestApplyRoundScore_NotIdempotent(t *testing.T) {
	c := ApplyRoundScore(ApplyRoundScore(NewContestant("C001", "Ada"), 5), 5)

	assert.Equal(t, []int{5, 5}, c.RoundScores())
	assert.Equal(t, 10, c.TotalScore())
}

// TestApplyRoundScore_DoesNotAlias ensures that updates return a new value and
// never write through to earlier snapshots.
func TestApplyRoundScore_DoesNotAlias(t *testing.T) {
	base := ApplyRoundScore(NewContestant("C001", "Ada"), 1)
	a := ApplyRoundScore(base, 2)
	b := ApplyRoundScore(base, 3)

	assert.Equal(t, []int{1}, base.RoundScores())
	assert.Equal(t, []int{1, 2}, a.RoundScores())
	assert.Equal(t, []int{1, 3}, b.RoundScores())

	scores := a.RoundScores()
	scores[0] = 99
	assert.Equal(t, 1, a.RoundScores()[0], "accessor must return a copy")
}

func TestApplyFinaleScore(t *testing.T) {
	c := NewContestant("C001", "Ada")
	c = ApplyFinaleScore(c, 15)
	c = ApplyFinaleScore(c, 20)

	assert.Equal(t, []int{15, 20}, c.FinaleScores())
	assert.Equal(t, 35, c.FinaleScoreTotal())
	assert.Equal(t, 2, c.FinaleRoundsPlayed())
	assert.Zero(t, c.TotalScore(), "finale scores do not count toward qualification")
}

func TestCombineFinalScore(t *testing.T) {
	c := NewContestant("C001", "Ada")
	c = ApplyRoundScore(c, 60)
	c = ApplyRoundScore(c, 40)
	for range 3 {
		c = ApplyFinaleScore(c, 15)
	}

	combined, err := CombineFinalScore(c)
	require.NoError(t, err)

	score, ok := combined.FinalScore()
	require.True(t, ok)
	assert.Equal(t, 145, score)
	assert.Equal(t, combined.TotalScore()+combined.FinaleScoreTotal(), score)

	t.Run("second combination fails", func(t *testing.T) {
		again, err := CombineFinalScore(combined)
		require.ErrorIs(t, err, ErrFinalScoreAlreadySet)

		score, _ := again.FinalScore()
		assert.Equal(t, 145, score, "final score is never recomputed")
	})
}
