package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiliankoe/wordquest/internal/deck"
)

// board lays out tokens in a fixed order: word ids, groupSize cards each.
func board(groupSize int, ids ...int) []deck.Token {
	var out []deck.Token
	for _, id := range ids {
		for i := 0; i < groupSize; i++ {
			out = append(out, deck.Token{WordID: id})
		}
	}
	return out
}

func TestMatchEngineMatch(t *testing.T) {
	e := NewMatchEngine(board(2, 1, 2), 2)
	require.Equal(t, 2, e.WordCount())

	require.True(t, e.Reveal(0))
	assert.False(t, e.Reveal(0), "already face up")
	assert.False(t, e.Full())
	require.True(t, e.Reveal(1))
	assert.True(t, e.Locked())
	assert.False(t, e.Reveal(2), "board is locked")

	res := e.Evaluate()
	assert.True(t, res.Matched)
	assert.Equal(t, 1, res.WordID)
	assert.Equal(t, []int{0, 1}, res.Positions)
	assert.Equal(t, 1, e.Moves())
	assert.False(t, e.Locked())
	assert.Empty(t, e.Revealed())
	assert.True(t, e.IsMatched(1))
	assert.False(t, e.Reveal(1), "matched cards stay out of play")
	assert.False(t, e.Complete())

	e.Reveal(2)
	e.Reveal(3)
	e.Evaluate()
	assert.True(t, e.Complete())
	assert.Equal(t, []int{1, 2}, e.Matched())
}

func TestMatchEngineMismatch(t *testing.T) {
	e := NewMatchEngine(board(3, 1, 2), 3)
	e.Reveal(0)
	e.Reveal(1)
	e.Reveal(3)
	res := e.Evaluate()
	assert.False(t, res.Matched)
	assert.Equal(t, 1, e.Moves())
	assert.Empty(t, e.Matched())
	assert.True(t, e.Reveal(0), "mismatched cards go face down")
}

func TestMatchEngineBounds(t *testing.T) {
	e := NewMatchEngine(board(2, 1), 2)
	assert.False(t, e.Reveal(-1))
	assert.False(t, e.Reveal(2))
	assert.Panics(t, func() { e.Evaluate() })
}
