package domain

import (
	"cmp"
	"slices"
)

// ScoreKey extracts the score a ranking is ordered by.
type ScoreKey func(Contestant) int

// Score keys used over a tournament's lifetime.
var (
	// ByTotalScore orders qualification standings.
	ByTotalScore ScoreKey = func(c Contestant) int { return c.TotalScore() }

	// ByFinaleScore orders finale standings.
	ByFinaleScore ScoreKey = func(c Contestant) int { return c.FinaleScoreTotal() }

	// ByFinalScore orders the podium. A contestant whose final score has not
	// been combined yet scores 0.
	ByFinalScore ScoreKey = func(c Contestant) int {
		score, _ := c.FinalScore()
		return score
	}
)

// Standing is one row of a ranked snapshot.
type Standing struct {
	// Rank is the 1-based position in the snapshot.
	Rank int

	// Contestant is the ranked contestant as of the snapshot.
	Contestant Contestant

	// Score is the value of the key the snapshot was ranked by.
	Score int
}

// Rank returns a new slice of contestants ordered by key, highest first.
//
// The sort is stable: contestants with equal scores keep their relative order
// from the input. Callers pass contestants in registration order, so equal
// scores, including a tie for champion, resolve to the earlier registration.
// The input slice is not modified.
func Rank(contestants []Contestant, key ScoreKey) []Contestant {
	ranked := slices.Clone(contestants)
	slices.SortStableFunc(ranked, func(a, b Contestant) int {
		return cmp.Compare(key(b), key(a))
	})
	return ranked
}

// Standings ranks contestants by key and numbers the result.
func Standings(contestants []Contestant, key ScoreKey) []Standing {
	ranked := Rank(contestants, key)
	out := make([]Standing, len(ranked))
	for i, c := range ranked {
		out[i] = Standing{Rank: i + 1, Contestant: c, Score: key(c)}
	}
	return out
}

// SelectFinalists returns the top k contestants by total score, in ranking
// order. When fewer than k contestants exist all of them are selected.
func SelectFinalists(contestants []Contestant, k int) []Contestant {
	if k <= 0 {
		return []Contestant{}
	}
	ranked := Rank(contestants, ByTotalScore)
	return ranked[:min(k, len(ranked))]
}
