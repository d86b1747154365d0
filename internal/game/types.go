package game

import (
	"time"

	"github.com/kiliankoe/wordquest/internal/deck"
)

type Phase string

const (
	PhasePlaying       Phase = "Playing"
	PhaseLevelComplete Phase = "LevelComplete"
	PhaseSentences     Phase = "Sentences"
	PhaseSentencesDone Phase = "SentencesDone"
	PhaseCrossword     Phase = "Crossword"
	PhaseFinished      Phase = "Finished"
)

// FinalLevel is the sentence + crossword level.
const FinalLevel = deck.MaxLevel + 1

type Mode string

const (
	ModeSolo Mode = "solo"
	ModePair Mode = "pair"
)

func (m Mode) Valid() bool { return m == ModeSolo || m == ModePair }

type Player int

const (
	PlayerOne Player = 1
	PlayerTwo Player = 2
)

func (p Player) Other() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

type Feedback string

const (
	FeedbackNone      Feedback = ""
	FeedbackCorrect   Feedback = "correct"
	FeedbackIncorrect Feedback = "incorrect"
)

type SessionConfig struct {
	Mode          Mode          `json:"mode"`
	WordCount     int           `json:"wordCount"`
	EvalDelay     time.Duration `json:"evalDelay"`
	FeedbackDelay time.Duration `json:"feedbackDelay"`
	UnlockAll     bool          `json:"unlockAll"`
}

const (
	DefaultWordCount     = 6
	DefaultEvalDelay     = 3200 * time.Millisecond
	DefaultFeedbackDelay = time.Second
)

func (c *SessionConfig) ApplyDefaults() {
	if !c.Mode.Valid() {
		c.Mode = ModeSolo
	}
	if c.WordCount <= 0 {
		c.WordCount = DefaultWordCount
	}
	if c.EvalDelay < 0 {
		c.EvalDelay = 0
	}
	if c.FeedbackDelay < 0 {
		c.FeedbackDelay = 0
	}
}

// Scores maps each player to their points; solo play only uses PlayerOne.
type Scores map[Player]int

func (s Scores) clone() Scores {
	out := make(Scores, len(s))
	for p, v := range s {
		out[p] = v
	}
	return out
}
