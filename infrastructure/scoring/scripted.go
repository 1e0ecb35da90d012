package scoring

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-arena/internal/ports"
)

var _ ports.ScoreGenerator = (*ScriptedGenerator)(nil)

// ScoreSheet maps a category to its score rows. Row k holds the scores of
// the k-th round that plays the category, indexed by slot.
//
//	sorting:
//	  - [10, 20, 30, 40]
//	  - [40, 30, 20, 10]
type ScoreSheet map[string][][]int

// ScriptedGenerator replays a ScoreSheet. A round of a category begins with
// the turn at slot 1; each begun round consumes the next row of that
// category. Asking for a score the sheet does not hold returns an error
// matching ports.ErrScoreUnavailable.
type ScriptedGenerator struct {
	mu    sync.Mutex
	rows  categoryIndex[[][]int]
	plays map[string]int
}

// NewScriptedGenerator creates a generator that replays sheet.
func NewScriptedGenerator(sheet ScoreSheet) *ScriptedGenerator {
	return &ScriptedGenerator{
		rows:  newCategoryIndex(map[string][][]int(sheet)),
		plays: make(map[string]int),
	}
}

// LoadScoreSheet decodes a YAML score sheet strictly from r.
func LoadScoreSheet(r io.Reader) (ScoreSheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read score sheet: %w", err)
	}

	var sheet ScoreSheet
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sheet); err != nil {
		return nil, fmt.Errorf("failed to decode score sheet: %w", err)
	}
	if len(sheet) == 0 {
		return nil, fmt.Errorf("score sheet has no categories")
	}
	return sheet, nil
}

// LoadScoreSheetFile reads a YAML score sheet from path.
func LoadScoreSheetFile(path string) (ScoreSheet, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open score sheet: %w", err)
	}
	defer f.Close()
	return LoadScoreSheet(f)
}

// Score implements ports.ScoreGenerator.
func (g *ScriptedGenerator) Score(ctx context.Context, category string, slot int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	rows, err := g.rows.lookup(category)
	if err != nil {
		return 0, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	key := foldName(category)
	if slot == 1 {
		g.plays[key]++
	}
	row := g.plays[key] - 1

	switch {
	case row < 0:
		return 0, fmt.Errorf("%w: %s round not started at slot 1", ports.ErrScoreUnavailable, category)
	case row >= len(rows):
		return 0, fmt.Errorf("%w: %s has %d scripted rounds, round %d requested",
			ports.ErrScoreUnavailable, category, len(rows), row+1)
	case slot < 1 || slot > len(rows[row]):
		return 0, fmt.Errorf("%w: %s round %d has no slot %d",
			ports.ErrScoreUnavailable, category, row+1, slot)
	}
	return rows[row][slot-1], nil
}

// Validate checks up front that every category has a script.
func (g *ScriptedGenerator) Validate(categories []string) error {
	return g.rows.validate(categories)
}
