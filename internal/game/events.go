package game

import (
	"fmt"
	"math"

	"github.com/kiliankoe/wordquest/internal/catalog"
)

type EventType string

const (
	EventMatch             EventType = "match"
	EventMismatch          EventType = "mismatch"
	EventLevelComplete     EventType = "level_complete"
	EventSentenceResult    EventType = "sentence_result"
	EventSentencesComplete EventType = "sentences_complete"
	EventCrosswordResult   EventType = "crossword_result"
	EventPhaseChange       EventType = "phase_change"
	EventGameComplete      EventType = "game_complete"
	EventFeedbackCleared   EventType = "feedback_cleared"
)

// Event is a notification for the rendering layer. Completion events carry a Summary.
type Event struct {
	Type     EventType     `json:"type"`
	Level    int           `json:"level"`
	Phase    Phase         `json:"phase"`
	WordID   int           `json:"wordId,omitempty"`
	Word     *catalog.Word `json:"word,omitempty"`
	Player   Player        `json:"player,omitempty"`
	Correct  bool          `json:"correct"`
	Grades   []Grade       `json:"grades,omitempty"`
	Summary  *Summary      `json:"summary,omitempty"`
	Deferred bool          `json:"deferred,omitempty"` // raised by a delayed evaluation or feedback clear
}

// Listener receives events after the session lock has been released.
type Listener func(Event)

type Summary struct {
	Level          int    `json:"level"`
	Mode           Mode   `json:"mode"`
	Moves          int    `json:"moves"`
	ElapsedSeconds int    `json:"elapsedSeconds"`
	Accuracy       int    `json:"accuracy"`
	Scores         Scores `json:"scores,omitempty"`
}

// Accuracy is round(required / moves * 100). Zero moves gives 0; moves never count below required.
func Accuracy(required, moves int) int {
	if moves <= 0 || required <= 0 {
		return 0
	}
	if moves < required {
		moves = required
	}
	return int(math.Round(float64(required) / float64(moves) * 100))
}

// FormatElapsed renders seconds as mm:ss.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
