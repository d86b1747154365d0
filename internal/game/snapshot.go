package game

import (
	"sort"

	"github.com/kiliankoe/wordquest/internal/catalog"
	"github.com/kiliankoe/wordquest/internal/deck"
)

// Snapshot is a copy of everything the rendering layer may query.
type Snapshot struct {
	Code     string `json:"sessionCode"`
	Level    int    `json:"level"`
	Phase    Phase  `json:"phase"`
	Mode     Mode   `json:"mode"`
	Unlocked []int  `json:"unlockedLevels"`
	Finished bool   `json:"finished"`
	Locked   bool   `json:"locked"`

	Elapsed     int  `json:"elapsedSeconds"`
	TimerActive bool `json:"timerActive"`

	ActivePlayer Player `json:"activePlayer"`
	Scores       Scores `json:"scores"`

	// memory levels
	Deck     []deck.Token `json:"deck,omitempty"`
	Revealed []int        `json:"revealed,omitempty"`
	Matched  []int        `json:"matched,omitempty"`
	Moves    int          `json:"moves"`
	Accuracy int          `json:"accuracy"`

	// final level
	Words          []catalog.Word   `json:"words,omitempty"`
	Sentence       string           `json:"sentence,omitempty"`
	CompletedWords []int            `json:"completedWords,omitempty"`
	Feedback       Feedback         `json:"feedback,omitempty"`
	Crossword      []CrosswordEntry `json:"crossword,omitempty"`
}

func (s *SessionCtx) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Code:         s.Code,
		Level:        s.level,
		Phase:        s.phase,
		Mode:         s.config.Mode,
		Finished:     s.finished,
		Elapsed:      s.timer.Elapsed(),
		TimerActive:  s.timer.Active(),
		ActivePlayer: s.turns.Active(),
		Scores:       s.turns.Scores(),
		Feedback:     s.feedback,
	}
	for l := range s.unlocked {
		snap.Unlocked = append(snap.Unlocked, l)
	}
	sort.Ints(snap.Unlocked)

	switch s.phase {
	case PhasePlaying:
		snap.Locked = s.engine.Locked()
	case PhaseSentences, PhaseCrossword:
		snap.Locked = false
	default:
		snap.Locked = true
	}

	if s.engine != nil {
		snap.Deck = s.engine.Tokens()
		snap.Revealed = s.engine.Revealed()
		snap.Matched = s.engine.Matched()
		snap.Moves = s.engine.Moves()
		snap.Accuracy = Accuracy(len(snap.Matched), snap.Moves)
	}
	if s.sentences != nil {
		snap.Words = append([]catalog.Word(nil), s.words...)
		snap.CompletedWords = s.sentences.Completed()
		if s.phase == PhaseSentences {
			snap.Sentence = s.sentences.Prompt()
		}
		snap.Moves = s.attempts
		snap.Accuracy = Accuracy(s.correct, s.attempts)
	}
	if s.crossword != nil && (s.phase == PhaseCrossword || s.phase == PhaseFinished) {
		snap.Crossword = s.crossword.Entries()
	}
	return snap
}
