package game

import "unicode/utf8"

type ActionType string

const (
	ActionReveal       ActionType = "reveal"
	ActionDrop         ActionType = "drop"
	ActionGuess        ActionType = "guess"
	ActionRetry        ActionType = "retry"
	ActionAdvance      ActionType = "advance"
	ActionSelectLevel  ActionType = "selectLevel"
	ActionSetMode      ActionType = "setMode"
	ActionRestartLevel ActionType = "restartLevel"
	ActionRestart      ActionType = "restart"
)

// Action is the transport-neutral form of a player input.
type Action struct {
	Type     ActionType `json:"type"`
	Position int        `json:"position"`
	WordID   int        `json:"wordId"`
	Letter   string     `json:"letter"`
	Level    int        `json:"level"`
	Mode     Mode       `json:"mode"`
}

// Apply dispatches an action. Gameplay inputs never fail; control actions report why they were refused.
func (s *SessionCtx) Apply(a Action) error {
	switch a.Type {
	case ActionReveal:
		s.Reveal(a.Position)
	case ActionDrop:
		s.Drop(a.WordID)
	case ActionGuess:
		s.GuessLetter(a.WordID, a.Position, lastRune(a.Letter))
	case ActionRetry:
		s.RetryWord(a.WordID)
	case ActionAdvance:
		return s.Advance()
	case ActionSelectLevel:
		return s.SelectLevel(a.Level)
	case ActionSetMode:
		return s.SetMode(a.Mode)
	case ActionRestartLevel:
		s.RestartLevel()
	case ActionRestart:
		s.Restart()
	default:
		return ErrUnknownAction
	}
	return nil
}

// lastRune keeps the most recently typed character of an input box; empty clears the cell.
func lastRune(s string) rune {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	if r == utf8.RuneError {
		return 0
	}
	return r
}
