package game

import (
	"strings"
	"unicode"

	"github.com/kiliankoe/wordquest/internal/catalog"
)

// Grade is the per-letter result of a crossword guess.
type Grade string

const (
	GradeNeutral Grade = "neutral"
	GradeCorrect Grade = "correct"
	GradePresent Grade = "present"
	GradeAbsent  Grade = "absent"
)

// GradeGuess implements the two-pass Wordle scoring, case-insensitive.
//
// Pass 1 marks exact hits and counts the target letters that were not hit.
// Pass 2 marks a letter present while the count for it lasts, absent otherwise.
// A letter is therefore never credited more often than it occurs in the target.
func GradeGuess(target, guess string) []Grade {
	t := []rune(strings.ToUpper(target))
	g := []rune(strings.ToUpper(guess))
	res := make([]Grade, len(t))
	counts := make(map[rune]int)

	for i := range t {
		if i < len(g) && g[i] == t[i] {
			res[i] = GradeCorrect
		} else {
			counts[t[i]]++
		}
	}
	for i := range t {
		if res[i] == GradeCorrect {
			continue
		}
		if i < len(g) && counts[g[i]] > 0 {
			res[i] = GradePresent
			counts[g[i]]--
		} else {
			res[i] = GradeAbsent
		}
	}
	return res
}

func allCorrect(gs []Grade) bool {
	for _, g := range gs {
		if g != GradeCorrect {
			return false
		}
	}
	return len(gs) > 0
}

// CrosswordEntry is the public view of one word row.
type CrosswordEntry struct {
	WordID int      `json:"wordId"`
	Length int      `json:"length"`
	Guess  []string `json:"guess"`
	Grades []Grade  `json:"grades"`
	Given  []bool   `json:"given,omitempty"`
	Solved bool     `json:"solved"`
}

// GuessResult describes a full-length guess that was graded.
type GuessResult struct {
	WordID int
	Guess  string
	Grades []Grade
	Solved bool
}

type crosswordRow struct {
	target string
	guess  []rune // 0 marks an empty cell
	given  []bool // non-letter cells are filled in from the start
	grades []Grade
	graded bool
	solved bool
}

// Crossword holds the guess buffers and grading for every word of the final level.
type Crossword struct {
	order []int
	rows  map[int]*crosswordRow
}

func NewCrossword(words []catalog.Word) *Crossword {
	c := &Crossword{rows: make(map[int]*crosswordRow, len(words))}
	for _, w := range words {
		target := []rune(strings.ToUpper(w.Spelling))
		n := len(target)
		row := &crosswordRow{target: w.Spelling, guess: make([]rune, n), given: make([]bool, n), grades: make([]Grade, n)}
		letters := 0
		for i, r := range target {
			row.grades[i] = GradeNeutral
			if unicode.IsLetter(r) {
				letters++
				continue
			}
			row.guess[i] = r
			row.given[i] = true
			row.grades[i] = GradeCorrect
		}
		row.solved = letters == 0
		c.order = append(c.order, w.ID)
		c.rows[w.ID] = row
	}
	return c
}

// GuessLetter writes one cell. A zero or space rune clears the cell; given cells never change.
// Once every cell of the row is filled the row is graded and the result returned with ok set.
func (c *Crossword) GuessLetter(wordID, pos int, ch rune) (res GuessResult, ok bool) {
	row := c.rows[wordID]
	if row == nil || row.solved || pos < 0 || pos >= len(row.guess) || row.given[pos] {
		return GuessResult{}, false
	}
	switch {
	case ch == 0 || unicode.IsSpace(ch):
		row.guess[pos] = 0
		return GuessResult{}, false
	case !unicode.IsLetter(ch):
		return GuessResult{}, false
	}
	row.guess[pos] = unicode.ToUpper(ch)
	for _, r := range row.guess {
		if r == 0 {
			return GuessResult{}, false
		}
	}
	guess := string(row.guess)
	row.grades = GradeGuess(row.target, guess)
	row.graded = true
	row.solved = allCorrect(row.grades)
	return GuessResult{
		WordID: wordID,
		Guess:  guess,
		Grades: append([]Grade(nil), row.grades...),
		Solved: row.solved,
	}, true
}

// Retry empties the guess buffer of a graded, unsolved word. The last grading stays
// visible until the next full guess replaces it.
func (c *Crossword) Retry(wordID int) bool {
	row := c.rows[wordID]
	if row == nil || row.solved || !row.graded {
		return false
	}
	for i := range row.guess {
		if !row.given[i] {
			row.guess[i] = 0
		}
	}
	return true
}

func (c *Crossword) Solved(wordID int) bool {
	row := c.rows[wordID]
	return row != nil && row.solved
}

func (c *Crossword) SolvedCount() int {
	n := 0
	for _, row := range c.rows {
		if row.solved {
			n++
		}
	}
	return n
}

func (c *Crossword) Done() bool { return len(c.rows) > 0 && c.SolvedCount() == len(c.rows) }

// Entries lists every row in catalog order.
func (c *Crossword) Entries() []CrosswordEntry {
	out := make([]CrosswordEntry, 0, len(c.order))
	for _, id := range c.order {
		row := c.rows[id]
		guess := make([]string, len(row.guess))
		for i, r := range row.guess {
			if r != 0 {
				guess[i] = string(r)
			}
		}
		entry := CrosswordEntry{
			WordID: id,
			Length: len(row.guess),
			Guess:  guess,
			Grades: append([]Grade(nil), row.grades...),
			Solved: row.solved,
		}
		for _, g := range row.given {
			if g {
				entry.Given = append([]bool(nil), row.given...)
				break
			}
		}
		out = append(out, entry)
	}
	return out
}
