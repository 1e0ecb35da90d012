// Package store persists completed tournaments to an append-only text log and
// reads that log back to build the all-time leaderboard.
package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/ahrav/go-arena/internal/domain"
	"github.com/ahrav/go-arena/internal/ports"
)

// DefaultResultsPath is the result log used when none is configured.
const DefaultResultsPath = "data/tournament_results.txt"

var _ ports.ResultStore = (*ResultLog)(nil)

const (
	recordRule  = "=========================================="
	sectionRule = "------------------------------------------"
)

var recordTemplate = template.Must(template.New("record").
	Funcs(template.FuncMap{
		"ansic": func(t time.Time) string { return t.Format(time.ANSIC) },
	}).
	Parse(recordRule + `
Tournament ID: {{.TournamentID}}
Date: {{ansic .StartedAt}}
Contestants: {{.ContestantCount}}
Rounds: {{.Rounds}}
` + sectionRule + `
{{with .Winner}}CHAMPION: {{.Contestant.Name}}
Final Score: {{.Score}}
{{end}}` + sectionRule + `
Final Standings:
{{range .Podium}}{{.Rank}}. {{.Contestant.Name}} - {{.Score}} points
{{end}}` + recordRule + `

`))

// recordView exposes the champion as a single-valued field for the template.
type recordView struct {
	domain.Record
	Winner *domain.Standing
}

// RenderRecord writes record to w in the result log format.
func RenderRecord(w io.Writer, record domain.Record) error {
	view := recordView{Record: record}
	if champion, ok := record.Champion(); ok {
		view.Winner = &champion
	}
	return recordTemplate.Execute(w, view)
}

// ResultLog is a ResultStore appending records to a text file shared by all
// tournaments. The directory is created on first use. ResultLog is safe for
// concurrent use within one process.
type ResultLog struct {
	mu   sync.Mutex
	path string
}

// NewResultLog creates a log at path, or at DefaultResultsPath when path is
// empty.
func NewResultLog(path string) *ResultLog {
	if strings.TrimSpace(path) == "" {
		path = DefaultResultsPath
	}
	return &ResultLog{path: filepath.Clean(path)}
}

// Path returns the file the log appends to.
func (l *ResultLog) Path() string { return l.path }

// Append implements ports.ResultStore. The record is rendered in full before
// the file is touched, so a rendering failure never leaves a partial entry.
func (l *ResultLog) Append(ctx context.Context, record domain.Record) error {
	if err := ctx.Err(); err != nil {
		return ports.NewPersistenceError(record.TournamentID, err)
	}

	var buf bytes.Buffer
	if err := RenderRecord(&buf, record); err != nil {
		return ports.NewPersistenceError(record.TournamentID, fmt.Errorf("render record: %w", err))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return ports.NewPersistenceError(record.TournamentID, fmt.Errorf("create results directory: %w", err))
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return ports.NewPersistenceError(record.TournamentID, fmt.Errorf("open results log: %w", err))
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return ports.NewPersistenceError(record.TournamentID, fmt.Errorf("write results log: %w", err))
	}
	if err := f.Close(); err != nil {
		return ports.NewPersistenceError(record.TournamentID, fmt.Errorf("close results log: %w", err))
	}
	return nil
}

// Records reads every record in the log. A missing log holds no records.
func (l *ResultLog) Records() ([]RecordSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open results log: %w", err)
	}
	defer f.Close()
	return ReadRecords(f)
}
