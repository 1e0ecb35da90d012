// Package scoring provides score generator adapters for the tournament
// engine: a seeded simulation, a replayable score sheet, bonus sources and a
// middleware chain for pacing, deadlines, metrics and tracing.
package scoring

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/ahrav/go-arena/internal/ports"
)

// ErrUnknownCategory indicates a category the generator has no scores for.
var ErrUnknownCategory = errors.New("unknown category")

// UnknownCategoryError reports an unknown category together with the
// closest known name, if any is close enough to be a likely typo.
type UnknownCategoryError struct {
	Category   string
	Suggestion string
}

// Error implements the error interface.
func (e *UnknownCategoryError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown category %q; did you mean %q?", e.Category, e.Suggestion)
	}
	return fmt.Sprintf("unknown category %q", e.Category)
}

// Unwrap matches both ErrUnknownCategory and ports.ErrScoreUnavailable.
func (e *UnknownCategoryError) Unwrap() []error {
	return []error{ErrUnknownCategory, ports.ErrScoreUnavailable}
}

// foldName normalizes a category name for lookups. A Caser is stateful, so
// each call gets its own.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// categoryIndex maps case-folded category names to a value.
type categoryIndex[V any] struct {
	values map[string]V
	names  []string
}

func newCategoryIndex[V any](entries map[string]V) categoryIndex[V] {
	idx := categoryIndex[V]{values: make(map[string]V, len(entries))}
	for name, v := range entries {
		idx.values[foldName(name)] = v
		idx.names = append(idx.names, name)
	}
	slices.Sort(idx.names)
	return idx
}

func (idx categoryIndex[V]) lookup(category string) (V, error) {
	v, ok := idx.values[foldName(category)]
	if !ok {
		return v, &UnknownCategoryError{Category: category, Suggestion: suggest(category, idx.names)}
	}
	return v, nil
}

// validate reports every category in categories the index does not know.
func (idx categoryIndex[V]) validate(categories []string) error {
	var errs []error
	for _, c := range categories {
		if _, err := idx.lookup(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// suggest returns the known name closest to name by edit distance over
// folded names, or "" when nothing is within a third of the name's length
// (and at least two edits).
func suggest(name string, known []string) string {
	target := foldName(name)
	limit := max(2, len([]rune(target))/3)

	best, bestDist := "", limit+1
	for _, k := range known {
		d := levenshtein.ComputeDistance(target, foldName(k))
		if d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}
