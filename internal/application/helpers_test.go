package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-arena/internal/domain"
)

var fixedStart = time.Date(2024, time.March, 9, 14, 30, 5, 0, time.UTC)

// newSession registers n default contestants.
func newSession(t *testing.T, n int, limits domain.SessionLimits) *domain.Session {
	t.Helper()
	cs := make([]domain.Contestant, n)
	for i := range cs {
		cs[i] = domain.NewContestant(domain.ContestantID(i+1), domain.DefaultContestantName(i+1))
	}
	s, err := domain.NewSession("T-test", fixedStart, cs, limits)
	require.NoError(t, err)
	return s
}

// qualified returns a session in FINALE whose contestants scored the given
// totals in a single qualifying round and whose top k are finalists.
func qualified(t *testing.T, totals []int, k, finaleRounds int) *domain.Session {
	t.Helper()
	s := newSession(t, len(totals), domain.SessionLimits{QualifyingRounds: 1, FinaleRounds: finaleRounds})
	require.NoError(t, s.Advance(domain.StageQualifying))
	require.NoError(t, s.RecordQualifyingRound(totals))
	require.NoError(t, s.Advance(domain.StageQualificationComplete))
	require.NoError(t, s.SetFinalists(domain.SelectFinalists(s.Contestants(), k)))
	require.NoError(t, s.Advance(domain.StageFinalistsSelected))
	require.NoError(t, s.Advance(domain.StageFinale))
	return s
}

func contestantIDs(standings []domain.Standing) []string {
	out := make([]string, len(standings))
	for i, st := range standings {
		out[i] = st.Contestant.ID()
	}
	return out
}
