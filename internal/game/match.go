package game

import (
	"fmt"

	"github.com/kiliankoe/wordquest/internal/deck"
)

// MatchEngine tracks face-up cards, matched words and moves for one memory level.
type MatchEngine struct {
	tokens    []deck.Token
	groupSize int
	wordCount int

	revealed []int
	matched  map[int]bool
	order    []int // matched word ids in match order
	moves    int
	locked   bool
}

// MatchResult is the outcome of one evaluation cycle.
type MatchResult struct {
	WordID    int
	Matched   bool
	Positions []int
}

func NewMatchEngine(tokens []deck.Token, groupSize int) *MatchEngine {
	words := map[int]bool{}
	for _, t := range tokens {
		words[t.WordID] = true
	}
	return &MatchEngine{
		tokens:    tokens,
		groupSize: groupSize,
		wordCount: len(words),
		matched:   make(map[int]bool),
	}
}

// Reveal turns a card face up. It reports false when the request is ignored:
// locked board, out of range, already face up or already matched.
func (e *MatchEngine) Reveal(pos int) bool {
	if e.locked || pos < 0 || pos >= len(e.tokens) {
		return false
	}
	if e.matched[e.tokens[pos].WordID] {
		return false
	}
	for _, p := range e.revealed {
		if p == pos {
			return false
		}
	}
	if len(e.revealed) >= e.groupSize {
		panic(fmt.Sprintf("game: %d cards face up with group size %d", len(e.revealed), e.groupSize))
	}
	e.revealed = append(e.revealed, pos)
	if len(e.revealed) == e.groupSize {
		e.locked = true
	}
	return true
}

// Full reports whether a complete group is face up and waiting for evaluation.
func (e *MatchEngine) Full() bool { return len(e.revealed) == e.groupSize }

// Evaluate scores the face-up group, clears it and releases the lock.
func (e *MatchEngine) Evaluate() MatchResult {
	if !e.Full() {
		panic(fmt.Sprintf("game: evaluate with %d of %d cards face up", len(e.revealed), e.groupSize))
	}
	first := e.tokens[e.revealed[0]].WordID
	res := MatchResult{WordID: first, Matched: true, Positions: append([]int(nil), e.revealed...)}
	for _, p := range e.revealed[1:] {
		if e.tokens[p].WordID != first {
			res.Matched = false
			break
		}
	}
	e.moves++
	if res.Matched && !e.matched[first] {
		e.matched[first] = true
		e.order = append(e.order, first)
	}
	e.revealed = e.revealed[:0]
	e.locked = false
	return res
}

// Complete reports whether every word on the board has been matched.
func (e *MatchEngine) Complete() bool { return e.wordCount > 0 && len(e.order) == e.wordCount }

func (e *MatchEngine) Tokens() []deck.Token  { return append([]deck.Token(nil), e.tokens...) }
func (e *MatchEngine) Revealed() []int       { return append([]int(nil), e.revealed...) }
func (e *MatchEngine) Matched() []int        { return append([]int(nil), e.order...) }
func (e *MatchEngine) IsMatched(id int) bool { return e.matched[id] }
func (e *MatchEngine) Moves() int            { return e.moves }
func (e *MatchEngine) Locked() bool          { return e.locked }
func (e *MatchEngine) WordCount() int        { return e.wordCount }
func (e *MatchEngine) GroupSize() int        { return e.groupSize }
