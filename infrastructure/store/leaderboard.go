package store

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// SummaryStanding is one "Final Standings" line of a logged record.
type SummaryStanding struct {
	Rank  int
	Name  string
	Score int
}

// RecordSummary is a tournament record as read back from the result log.
// Contestants are known only by name there.
type RecordSummary struct {
	TournamentID string
	Date         time.Time
	Contestants  int
	Rounds       int
	Champion     string
	FinalScore   int
	Standings    []SummaryStanding
}

// LeaderboardEntry aggregates one contestant name across all records.
type LeaderboardEntry struct {
	Name string
	// Titles is the number of championships won.
	Titles int
	// BestScore is the highest final score reached on any podium.
	BestScore int
	// Podiums is the number of podium appearances.
	Podiums int
}

var standingLine = regexp.MustCompile(`^(\d+)\. (.*) - (-?\d+) points$`)

// ReadRecords parses a result log. Separator and blank lines are skipped; a
// field with a malformed value is an error naming its line.
func ReadRecords(r io.Reader) ([]RecordSummary, error) {
	var (
		out     []RecordSummary
		current *RecordSummary
		lineNo  int
	)

	flush := func() {
		if current != nil {
			out = append(out, *current)
			current = nil
		}
	}
	fail := func(field string, err error) error {
		return fmt.Errorf("results log line %d: %s: %w", lineNo, field, err)
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if id, ok := strings.CutPrefix(line, "Tournament ID: "); ok {
			flush()
			current = &RecordSummary{TournamentID: id}
			continue
		}
		if current == nil {
			continue
		}

		var err error
		switch {
		case strings.HasPrefix(line, "Date: "):
			current.Date, err = time.Parse(time.ANSIC, strings.TrimPrefix(line, "Date: "))
			if err != nil {
				return nil, fail("date", err)
			}
		case strings.HasPrefix(line, "Contestants: "):
			if current.Contestants, err = strconv.Atoi(strings.TrimPrefix(line, "Contestants: ")); err != nil {
				return nil, fail("contestants", err)
			}
		case strings.HasPrefix(line, "Rounds: "):
			if current.Rounds, err = strconv.Atoi(strings.TrimPrefix(line, "Rounds: ")); err != nil {
				return nil, fail("rounds", err)
			}
		case strings.HasPrefix(line, "CHAMPION: "):
			current.Champion = strings.TrimPrefix(line, "CHAMPION: ")
		case strings.HasPrefix(line, "Final Score: "):
			if current.FinalScore, err = strconv.Atoi(strings.TrimPrefix(line, "Final Score: ")); err != nil {
				return nil, fail("final score", err)
			}
		default:
			if m := standingLine.FindStringSubmatch(line); m != nil {
				rank, err := strconv.Atoi(m[1])
				if err != nil {
					return nil, fail("standing rank", err)
				}
				score, err := strconv.Atoi(m[3])
				if err != nil {
					return nil, fail("standing", err)
				}
				current.Standings = append(current.Standings, SummaryStanding{Rank: rank, Name: m[2], Score: score})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read results log: %w", err)
	}
	flush()
	return out, nil
}

// BuildLeaderboard aggregates championships and best podium scores per name.
// Entries are ordered by titles, then best score, both descending; remaining
// ties keep the order in which names first appeared in the log.
func BuildLeaderboard(records []RecordSummary) []LeaderboardEntry {
	index := make(map[string]int)
	var entries []LeaderboardEntry

	entry := func(name string) *LeaderboardEntry {
		i, ok := index[name]
		if !ok {
			i = len(entries)
			index[name] = i
			entries = append(entries, LeaderboardEntry{Name: name})
		}
		return &entries[i]
	}

	for _, rec := range records {
		for _, s := range rec.Standings {
			e := entry(s.Name)
			if e.Podiums == 0 || s.Score > e.BestScore {
				e.BestScore = s.Score
			}
			e.Podiums++
		}
		if rec.Champion != "" {
			e := entry(rec.Champion)
			e.Titles++
			if e.Podiums == 0 {
				e.BestScore = rec.FinalScore
				e.Podiums = 1
			}
		}
	}

	slices.SortStableFunc(entries, func(a, b LeaderboardEntry) int {
		if c := cmp.Compare(b.Titles, a.Titles); c != 0 {
			return c
		}
		return cmp.Compare(b.BestScore, a.BestScore)
	})
	return entries
}
