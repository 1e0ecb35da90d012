package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ahrav/go-arena/infrastructure/store"
	"github.com/ahrav/go-arena/internal/domain"
	"github.com/ahrav/go-arena/internal/ports"
)

const banner = "============================================================"

var _ ports.Observer = (*consoleObserver)(nil)

// consoleObserver prints the running tournament as a scoreboard.
type consoleObserver struct {
	w           io.Writer
	rounds      int
	finale      int
	resultsPath string
}

func newConsoleObserver(w io.Writer, rounds, finale int, resultsPath string) *consoleObserver {
	return &consoleObserver{w: w, rounds: rounds, finale: finale, resultsPath: resultsPath}
}

func (c *consoleObserver) heading(title string) {
	fmt.Fprintf(c.w, "\n%s\n%s\n%s\n", banner, title, banner)
}

func (c *consoleObserver) table(header string, rows func(tw *tabwriter.Writer)) {
	tw := tabwriter.NewWriter(c.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	_ = tw.Flush()
}

func (c *consoleObserver) StageEntered(_ context.Context, id string, stage domain.Stage) {
	switch stage {
	case domain.StageInit:
		fmt.Fprintf(c.w, "Tournament %s created\n", id)
	case domain.StageQualifying:
		c.heading(fmt.Sprintf("TOURNAMENT BEGINS: %d rounds + grand finale", c.rounds))
	case domain.StageFinale:
		c.heading(fmt.Sprintf("GRAND FINALE: %d rounds", c.finale))
	}
}

func (c *consoleObserver) QualifyingRoundCompleted(_ context.Context, report domain.RoundReport, standings []domain.Standing) {
	c.heading(fmt.Sprintf("ROUND %2d / %d  Category: %s", report.Round, c.rounds, report.Category))
	round := make(map[string]int, len(report.Turns))
	for _, turn := range report.Turns {
		round[turn.ContestantID] = turn.Score
	}
	c.table("Rank\tID\tName\tRound\tTotal\tAverage", func(tw *tabwriter.Writer) {
		for _, s := range standings {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%.1f\n", s.Rank, s.Contestant.ID(), s.Contestant.Name(),
				round[s.Contestant.ID()], s.Score, s.Contestant.AverageScore())
		}
	})
}

func (c *consoleObserver) QualificationCompleted(context.Context, []domain.Standing) {
	c.heading("QUALIFICATION COMPLETE")
}

func (c *consoleObserver) FinalistsSelected(_ context.Context, finalists []domain.Standing) {
	fmt.Fprintf(c.w, "\nFINALISTS:\n")
	for _, f := range finalists {
		fmt.Fprintf(c.w, "%d. %s (%d points)\n", f.Rank, f.Contestant.Name(), f.Score)
	}
}

func (c *consoleObserver) FinaleRoundCompleted(_ context.Context, report domain.RoundReport, standings []domain.Standing) {
	c.heading(fmt.Sprintf("FINALE ROUND %d / %d  Category: %s", report.Round, c.finale, report.Category))
	if report.Description != "" {
		fmt.Fprintf(c.w, "Challenge: %s\n", report.Description)
	}
	c.table("Name\tBase\tBonus\tScore", func(tw *tabwriter.Writer) {
		for _, t := range report.Turns {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", t.Name, t.Base, t.Bonus, t.Score)
		}
	})
	fmt.Fprintf(c.w, "\nFinale standings after round %d:\n", report.Round)
	for _, s := range standings {
		fmt.Fprintf(c.w, "%d. %s - %d points\n", s.Rank, s.Contestant.Name(), s.Score)
	}
}

func (c *consoleObserver) WinnerDeclared(_ context.Context, podium []domain.Standing) {
	c.heading("TOURNAMENT RESULTS")
	c.table("Place\tName\tQualifying\tFinale\tFinal", func(tw *tabwriter.Writer) {
		for _, s := range podium {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", s.Rank, s.Contestant.Name(),
				s.Contestant.TotalScore(), s.Contestant.FinaleScoreTotal(), s.Score)
		}
	})
	if len(podium) > 0 {
		fmt.Fprintf(c.w, "\nCONGRATULATIONS TO THE CHAMPION: %s\n", podium[0].Contestant.Name())
	}
}

func (c *consoleObserver) Persisted(_ context.Context, _ domain.Record, err error) {
	if err != nil {
		fmt.Fprintf(c.w, "\nTournament results could not be saved: %v\n", err)
		return
	}
	fmt.Fprintf(c.w, "\nTournament results saved to %s\n", c.resultsPath)
}

// errQuit is returned when the operator stops the tournament at a pause.
var errQuit = errors.New("stopped by operator")

// promptContinuation waits for the operator between steps. An empty line
// continues; "q" stops the tournament.
type promptContinuation struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptContinuation(in io.Reader, out io.Writer) *promptContinuation {
	return &promptContinuation{in: bufio.NewReader(in), out: out}
}

// Continue implements ports.Continuation. The read is abandoned when ctx
// ends, but its goroutine stays blocked on the reader and may consume the
// next line. Do not call Continue again on the same promptContinuation after
// a cancellation.
func (p *promptContinuation) Continue(ctx context.Context, stage domain.Stage) error {
	fmt.Fprintf(p.out, "\n[%s] press Enter to continue, q to quit: ", stage)

	type answer struct {
		line string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- answer{line, err}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case a := <-ch:
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return fmt.Errorf("read operator input: %w", a.err)
		}
		if strings.EqualFold(strings.TrimSpace(a.line), "q") {
			return errQuit
		}
		if errors.Is(a.err, io.EOF) && a.line == "" {
			return errQuit
		}
		return nil
	}
}

// printLeaderboard writes the aggregated leaderboard as a table. A positive
// top limits the number of rows.
func printLeaderboard(w io.Writer, entries []store.LeaderboardEntry, top int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No tournaments recorded yet.")
		return
	}
	if top > 0 && top < len(entries) {
		entries = entries[:top]
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Rank\tName\tTitles\tBest\tPodiums")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", i+1, e.Name, e.Titles, e.BestScore, e.Podiums)
	}
	_ = tw.Flush()
}
