package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-arena/internal/ports"
)

// TestSuggest verifies that close misspellings resolve to a known category and
// unrelated names resolve to nothing.
func TestSuggest(t *testing.T) {
	known := []string{"graph", "hashing", "linkedlist", "sorting", "stack_queue"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"one missing letter", "sortng", "sorting"},
		{"transposed letters", "grpah", "graph"},
		{"case differs", "LinkedLst", "linkedlist"},
		{"unrelated", "xyz", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, suggest(tt.input, known))
		})
	}
}

// TestCategoryIndex_Lookup verifies case-insensitive lookups and the error
// returned for unknown categories.
func TestCategoryIndex_Lookup(t *testing.T) {
	idx := newCategoryIndex(map[string]int{"sorting": 1, "Graph": 2})

	v, err := idx.lookup("SORTING")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = idx.lookup(" graph ")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = idx.lookup("sortin")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.ErrorIs(t, err, ports.ErrScoreUnavailable)

	var uce *UnknownCategoryError
	require.True(t, errors.As(err, &uce))
	assert.Equal(t, "sortin", uce.Category)
	assert.Equal(t, "sorting", uce.Suggestion)
	assert.Contains(t, err.Error(), `did you mean "sorting"`)
}

// TestCategoryIndex_Validate verifies that every unknown category is reported.
func TestCategoryIndex_Validate(t *testing.T) {
	idx := newCategoryIndex(map[string]int{"sorting": 1, "graph": 2})

	assert.NoError(t, idx.validate([]string{"sorting", "Graph"}))

	err := idx.validate([]string{"sorting", "grph", "queue"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Contains(t, err.Error(), `"grph"`)
	assert.Contains(t, err.Error(), `"queue"`)
}
