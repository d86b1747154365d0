package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiliankoe/wordquest/internal/catalog"
)

func TestGradeGuess(t *testing.T) {
	A, C, P := GradeAbsent, GradeCorrect, GradePresent
	tests := []struct {
		name   string
		target string
		guess  string
		want   []Grade
	}{
		{"one letter off", "TOUGH", "ROUGH", []Grade{A, C, C, C, C}},
		{"exact", "TOUGH", "TOUGH", []Grade{C, C, C, C, C}},
		{"case insensitive", "tough", "TOUGH", []Grade{C, C, C, C, C}},
		{"repeated guess letter only hits", "ROBOT", "OOOOO", []Grade{A, C, A, C, A}},
		{"present once", "THOUGH", "HHXXXX", []Grade{P, C, A, A, A, A}},
		{"anagram", "THOUGH", "HGUOHT", []Grade{P, P, P, P, P, P}},
		{"short guess", "TOUGH", "TO", []Grade{C, C, A, A, A}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GradeGuess(tc.target, tc.guess))
		})
	}
}

func TestGradeGuessNeverOvercredits(t *testing.T) {
	pairs := [][2]string{
		{"THROUGH", "HHHHHHH"},
		{"THOROUGH", "OOOOOOOO"},
		{"THOUGHT", "TTTTTTT"},
		{"THROUGHOUT", "UUUUTTTTHH"},
		{"TOUGH", "GGGGG"},
	}
	for _, p := range pairs {
		target, guess := p[0], p[1]
		grades := GradeGuess(target, guess)
		credited := map[rune]int{}
		for i, r := range guess {
			if grades[i] != GradeAbsent {
				credited[r]++
			}
		}
		for r, n := range credited {
			assert.LessOrEqual(t, n, strings.Count(target, string(r)), "%s vs %s letter %c", target, guess, r)
		}
		// grading is a pure function
		assert.Equal(t, grades, GradeGuess(target, guess))
	}
}

func tough() []catalog.Word {
	w, _ := catalog.ByID(catalog.Default(), 3)
	return []catalog.Word{w}
}

func typeWord(c *Crossword, id int, word string) (GuessResult, bool) {
	var res GuessResult
	var ok bool
	for i, r := range word {
		res, ok = c.GuessLetter(id, i, r)
	}
	return res, ok
}

func TestCrosswordBuffersUntilRowFull(t *testing.T) {
	c := NewCrossword(tough())

	for i, r := range "ROUG" {
		_, ok := c.GuessLetter(3, i, r)
		require.False(t, ok, "row graded before it was full")
	}
	entry := c.Entries()[0]
	assert.Equal(t, []string{"R", "O", "U", "G", ""}, entry.Guess)
	assert.Equal(t, []Grade{GradeNeutral, GradeNeutral, GradeNeutral, GradeNeutral, GradeNeutral}, entry.Grades)

	_, ok := c.GuessLetter(3, 4, '7')
	assert.False(t, ok, "digits are ignored")
	_, ok = c.GuessLetter(3, 9, 'h')
	assert.False(t, ok, "out of range is ignored")

	res, ok := c.GuessLetter(3, 4, 'h')
	require.True(t, ok)
	assert.Equal(t, "ROUGH", res.Guess)
	assert.False(t, res.Solved)
	assert.Equal(t, []Grade{GradeAbsent, GradeCorrect, GradeCorrect, GradeCorrect, GradeCorrect}, res.Grades)
	assert.False(t, c.Done())
}

func TestCrosswordClearAndRegrade(t *testing.T) {
	c := NewCrossword(tough())
	_, ok := typeWord(c, 3, "ROUGH")
	require.True(t, ok)

	_, ok = c.GuessLetter(3, 0, 0)
	assert.False(t, ok)
	assert.Equal(t, "", c.Entries()[0].Guess[0])

	res, ok := c.GuessLetter(3, 0, 't')
	require.True(t, ok)
	assert.True(t, res.Solved)
	assert.True(t, c.Solved(3))
	assert.True(t, c.Done())
	assert.Equal(t, 1, c.SolvedCount())

	_, ok = c.GuessLetter(3, 0, 'x')
	assert.False(t, ok, "solved rows are frozen")
	assert.Equal(t, "T", c.Entries()[0].Guess[0])
}

func TestCrosswordRetry(t *testing.T) {
	c := NewCrossword(tough())
	assert.False(t, c.Retry(3), "nothing graded yet")

	typeWord(c, 3, "ROUGH")
	require.True(t, c.Retry(3))
	entry := c.Entries()[0]
	assert.Equal(t, []string{"", "", "", "", ""}, entry.Guess)
	assert.Equal(t, GradeAbsent, entry.Grades[0], "last grading stays visible")

	typeWord(c, 3, "TOUGH")
	assert.False(t, c.Retry(3), "solved rows cannot be retried")
	assert.False(t, c.Retry(42))
}

func TestCrosswordNonLetterCellsAreGiven(t *testing.T) {
	c := NewCrossword([]catalog.Word{
		{ID: 1, Spelling: "T-shirt"},
		{ID: 2, Spelling: "ice cream"},
	})
	entries := c.Entries()
	assert.Equal(t, []string{"", "-", "", "", "", "", ""}, entries[0].Guess)
	assert.Equal(t, []bool{false, true, false, false, false, false, false}, entries[0].Given)
	assert.Equal(t, " ", entries[1].Guess[3])

	_, ok := c.GuessLetter(1, 1, 'x')
	assert.False(t, ok, "given cells cannot be overwritten")
	_, ok = c.GuessLetter(2, 3, 0)
	assert.False(t, ok)
	assert.Equal(t, " ", c.Entries()[1].Guess[3], "given cells cannot be cleared")

	res, ok := typeWord(c, 1, "TXSHIRP")
	require.True(t, ok)
	assert.False(t, res.Solved)
	require.True(t, c.Retry(1))
	assert.Equal(t, "-", c.Entries()[0].Guess[1], "retry keeps given cells")

	for _, w := range []struct {
		id    int
		spell string
	}{{1, "T-shirt"}, {2, "ice cream"}} {
		for i, r := range []rune(w.spell) {
			c.GuessLetter(w.id, i, r)
		}
	}
	assert.True(t, c.Solved(1))
	assert.True(t, c.Solved(2))
	assert.True(t, c.Done())
}

func TestCrosswordRowWithoutLetters(t *testing.T) {
	c := NewCrossword([]catalog.Word{{ID: 7, Spelling: "42"}})
	assert.True(t, c.Solved(7))
	assert.True(t, c.Done())
}
