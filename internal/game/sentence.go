package game

import (
	"regexp"

	"github.com/kiliankoe/wordquest/internal/catalog"
	"github.com/kiliankoe/wordquest/internal/deck"
)

// BlankMarker replaces the missing word in a sentence prompt.
const BlankMarker = "___"

// SentenceQueue walks a shuffled list of example sentences; the pointer only moves forward on a correct drop.
type SentenceQueue struct {
	order     []catalog.Word
	pos       int
	completed map[int]bool
	done      []int
}

func NewSentenceQueue(words []catalog.Word, sh deck.Shuffler) *SentenceQueue {
	order := append([]catalog.Word(nil), words...)
	sh.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return &SentenceQueue{order: order, completed: make(map[int]bool)}
}

// Drop judges a word dropped on the blank. ok is false when there is nothing left to fill.
func (q *SentenceQueue) Drop(wordID int) (correct, ok bool) {
	if q.Done() || len(q.order) == 0 {
		return false, false
	}
	cur := q.order[q.pos]
	if wordID != cur.ID {
		return false, true
	}
	q.completed[cur.ID] = true
	q.done = append(q.done, cur.ID)
	if q.pos < len(q.order)-1 {
		q.pos++
	}
	return true, true
}

func (q *SentenceQueue) Done() bool { return len(q.done) == len(q.order) }

// Current is the word whose sentence is on screen.
func (q *SentenceQueue) Current() (catalog.Word, bool) {
	if len(q.order) == 0 {
		return catalog.Word{}, false
	}
	return q.order[q.pos], true
}

// Prompt is the current example sentence with the word blanked out.
func (q *SentenceQueue) Prompt() string {
	w, ok := q.Current()
	if !ok {
		return ""
	}
	return Blank(w.Example, w.Spelling)
}

func (q *SentenceQueue) Position() int    { return q.pos }
func (q *SentenceQueue) Completed() []int { return append([]int(nil), q.done...) }

// Blank replaces the first case-insensitive occurrence of word in sentence with BlankMarker.
// A whole-word occurrence wins over one embedded in a longer word.
func Blank(sentence, word string) string {
	if word == "" {
		return sentence
	}
	quoted := regexp.QuoteMeta(word)
	loc := regexp.MustCompile(`(?i)\b` + quoted + `\b`).FindStringIndex(sentence)
	if loc == nil {
		loc = regexp.MustCompile("(?i)" + quoted).FindStringIndex(sentence)
	}
	if loc == nil {
		return sentence
	}
	return sentence[:loc[0]] + BlankMarker + sentence[loc[1]:]
}
