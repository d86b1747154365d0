package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSummary(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "results.txt")

	level := Event{Type: EventLevelComplete, Summary: &Summary{Level: 2, Mode: ModeSolo, Moves: 9, ElapsedSeconds: 75, Accuracy: 67}}
	require.NoError(t, ExportSummary(file, "ABCDE", level))

	final := Event{Type: EventGameComplete, Summary: &Summary{
		Level: FinalLevel, Mode: ModePair, Moves: 13, Accuracy: 92,
		Scores: Scores{PlayerOne: 5, PlayerTwo: 7},
	}}
	require.NoError(t, ExportSummary(file, "ABCDE", final))

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, "Session ABCDE")
	assert.Contains(t, out, "Level 2 complete")
	assert.Contains(t, out, "Time: 01:15")
	assert.Contains(t, out, "Moves: 9")
	assert.Contains(t, out, "Accuracy: 67%")
	assert.Contains(t, out, "Game complete")
	assert.Contains(t, out, "- Player 1: 5 points\n- Player 2: 7 points")
	assert.Equal(t, 2, strings.Count(out, strings.Repeat("=", 50)))
}

func TestExportSummaryNeedsSummary(t *testing.T) {
	err := ExportSummary(filepath.Join(t.TempDir(), "x.txt"), "ABCDE", Event{Type: EventMatch})
	assert.Error(t, err)
}
