package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTurnsSolo(t *testing.T) {
	tr := NewTurns(ModeSolo)
	assert.Equal(t, PlayerOne, tr.Observe(SourceMatch, true))
	assert.Equal(t, PlayerOne, tr.Observe(SourceSentence, false))
	assert.Equal(t, PlayerOne, tr.Active())
	assert.Equal(t, Scores{PlayerOne: 0, PlayerTwo: 0}, tr.Scores())
}

func TestTurnsPair(t *testing.T) {
	tr := NewTurns(ModePair)

	// a match keeps the turn
	assert.Equal(t, PlayerOne, tr.Observe(SourceMatch, true))
	assert.Equal(t, PlayerOne, tr.Active())

	// a miss passes it
	assert.Equal(t, PlayerOne, tr.Observe(SourceMatch, false))
	assert.Equal(t, PlayerTwo, tr.Active())

	// judged sentences and crossword rows always pass it
	assert.Equal(t, PlayerTwo, tr.Observe(SourceSentence, true))
	assert.Equal(t, PlayerOne, tr.Active())
	assert.Equal(t, PlayerOne, tr.Observe(SourceCrossword, true))
	assert.Equal(t, PlayerTwo, tr.Active())

	assert.Equal(t, Scores{PlayerOne: 2, PlayerTwo: 1}, tr.Scores())
}

func TestTurnsScoresAreCopied(t *testing.T) {
	tr := NewTurns(ModePair)
	s := tr.Scores()
	s[PlayerOne] = 99
	assert.Equal(t, 0, tr.Scores()[PlayerOne])
}
