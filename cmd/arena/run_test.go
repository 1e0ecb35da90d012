package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ahrav/go-arena/infrastructure/scoring"
	"github.com/ahrav/go-arena/infrastructure/store"
	"github.com/ahrav/go-arena/internal/application"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoadConfig_Overrides verifies that flags win over the file.
func TestLoadConfig_Overrides(t *testing.T) {
	path := writeFile(t, "arena.yaml", "total_qualifying_rounds: 4\ncontestant_count: 6\nscoring:\n  seed: 3\n")

	cfg, err := loadConfig(context.Background(), runOptions{configPath: path})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.TotalQualifyingRounds)
	assert.Equal(t, 6, cfg.ContestantCount)
	assert.Equal(t, uint64(3), cfg.Scoring.Seed)

	cfg, err = loadConfig(context.Background(), runOptions{
		configPath:  path,
		seed:        11,
		contestants: 5,
		scriptPath:  "sheet.yaml",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(11), cfg.Scoring.Seed)
	assert.Equal(t, 5, cfg.ContestantCount)
	assert.Equal(t, "sheet.yaml", cfg.Scoring.ScriptPath)

	_, err = loadConfig(context.Background(), runOptions{configPath: filepath.Join(t.TempDir(), "none.yaml")})
	assert.Error(t, err)
}

// TestFakeNames keeps configured names and fills the rest with distinct
// generated ones.
func TestFakeNames(t *testing.T) {
	names := fakeNames(42, []string{"Ada"}, 12)

	require.Len(t, names, 12)
	assert.Equal(t, "Ada", names[0])
	seen := map[string]bool{}
	for _, n := range names {
		assert.NotEmpty(t, n)
		assert.False(t, seen[n], "duplicate name %q", n)
		seen[n] = true
	}
	assert.Equal(t, names, fakeNames(42, []string{"Ada"}, 12), "a seed fixes the names")
}

// TestRunTournament_Simulated plays a full seeded tournament and appends it
// to the result log.
func TestRunTournament_Simulated(t *testing.T) {
	results := filepath.Join(t.TempDir(), "data", "results.txt")
	var out bytes.Buffer

	err := runTournament(context.Background(), runOptions{seed: 7, resultsPath: results},
		zaptest.NewLogger(t), strings.NewReader(""), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "ROUND 10 / 10")
	assert.Contains(t, out.String(), "FINALE ROUND 3 / 3")
	assert.Contains(t, out.String(), "CONGRATULATIONS TO THE CHAMPION")

	records, err := store.NewResultLog(results).Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, application.DefaultContestantCount, records[0].Contestants)
	assert.Len(t, records[0].Standings, application.DefaultFinalistCount)
}

// TestRunTournament_Scripted replays a score sheet; the scripted leader wins.
func TestRunTournament_Scripted(t *testing.T) {
	sheet := writeFile(t, "sheet.yaml", `
a:
  - [10, 20, 30, 90]
b:
  - [1, 2, 3, 4]
`)
	config := writeFile(t, "arena.yaml", `
total_qualifying_rounds: 1
finale_rounds: 1
contestant_count: 4
categories: [a]
finale_categories: [b]
finale_descriptions: [decider]
finale_bonus: {min: 0, max: 0}
finalist_count: 2
contestant_names: [Ann, Ben, Cat, Dan]
`)
	results := filepath.Join(t.TempDir(), "results.txt")
	var out bytes.Buffer

	err := runTournament(context.Background(),
		runOptions{configPath: config, scriptPath: sheet, resultsPath: results},
		zaptest.NewLogger(t), strings.NewReader(""), &out)
	require.NoError(t, err)

	records, err := store.NewResultLog(results).Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dan", records[0].Champion)
	assert.Equal(t, 91, records[0].FinalScore)
	assert.Contains(t, out.String(), "Challenge: decider")
}

// TestRunTournament_UnknownCategory fails before any round is played.
func TestRunTournament_UnknownCategory(t *testing.T) {
	sheet := writeFile(t, "sheet.yaml", "sorting:\n  - [1, 2, 3, 4]\n")
	var out bytes.Buffer

	err := runTournament(context.Background(),
		runOptions{scriptPath: sheet, resultsPath: filepath.Join(t.TempDir(), "r.txt")},
		zaptest.NewLogger(t), strings.NewReader(""), &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, scoring.ErrUnknownCategory)
	assert.Empty(t, out.String())
}

// TestRunTournament_InteractiveQuit stops at the first pause without saving.
func TestRunTournament_InteractiveQuit(t *testing.T) {
	results := filepath.Join(t.TempDir(), "results.txt")
	var out bytes.Buffer

	err := runTournament(context.Background(),
		runOptions{seed: 1, interactive: true, resultsPath: results},
		zaptest.NewLogger(t), strings.NewReader("q\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "ROUND  1 / 10")
	assert.NotContains(t, out.String(), "ROUND  2 / 10")
	_, statErr := os.Stat(results)
	assert.True(t, os.IsNotExist(statErr))
}
