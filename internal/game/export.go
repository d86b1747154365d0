package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ExportSummary appends a completed level or game to a plain-text results file.
func ExportSummary(filename, code string, ev Event) error {
	if ev.Summary == nil {
		return errors.New("event has no summary")
	}
	sum := ev.Summary

	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var sb strings.Builder
	title := fmt.Sprintf("Level %d complete", sum.Level)
	if ev.Type == EventGameComplete {
		title = "Game complete"
	}
	sb.WriteString(fmt.Sprintf("Word Quest Results - Session %s\n", code))
	sb.WriteString(fmt.Sprintf("%s at %s (%s)\n", title, time.Now().Format("2006-01-02 15:04:05"), sum.Mode))
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	sb.WriteString(fmt.Sprintf("Time: %s\n", FormatElapsed(sum.ElapsedSeconds)))
	sb.WriteString(fmt.Sprintf("Moves: %d\n", sum.Moves))
	sb.WriteString(fmt.Sprintf("Accuracy: %d%%\n", sum.Accuracy))

	if len(sum.Scores) > 0 {
		players := make([]Player, 0, len(sum.Scores))
		for p := range sum.Scores {
			players = append(players, p)
		}
		sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })
		sb.WriteString("Scores:\n")
		for _, p := range players {
			sb.WriteString(fmt.Sprintf("- Player %d: %d points\n", p, sum.Scores[p]))
		}
	}
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	if _, err := file.WriteString(sb.String()); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	return nil
}
