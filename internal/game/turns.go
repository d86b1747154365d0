package game

// Source identifies which judge produced an outcome.
type Source string

const (
	SourceMatch     Source = "match"
	SourceSentence  Source = "sentence"
	SourceCrossword Source = "crossword"
)

// Turns keeps the active player and per-player scores. Outside pair mode it never changes.
//
// A memory match keeps the turn with the finder; every other outcome passes the turn.
type Turns struct {
	mode   Mode
	active Player
	scores Scores
}

func NewTurns(mode Mode) *Turns {
	return &Turns{mode: mode, active: PlayerOne, scores: Scores{PlayerOne: 0, PlayerTwo: 0}}
}

// Observe applies one judged outcome and returns the player it was credited to.
func (t *Turns) Observe(src Source, positive bool) Player {
	actor := t.active
	if t.mode != ModePair {
		return actor
	}
	if positive {
		t.scores[actor]++
	}
	if !positive || src != SourceMatch {
		t.active = t.active.Other()
	}
	return actor
}

func (t *Turns) Active() Player { return t.active }
func (t *Turns) Mode() Mode     { return t.mode }
func (t *Turns) Scores() Scores { return t.scores.clone() }
