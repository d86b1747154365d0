package deck

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kiliankoe/wordquest/internal/catalog"
)

type Modality string

const (
	ModalityImage      Modality = "image"
	ModalityAudio      Modality = "audio"
	ModalityDefinition Modality = "definition"
	ModalitySpelling   Modality = "spelling"
)

// MaxLevel is the last level played with cards.
const MaxLevel = 3

var ErrNoDeck = errors.New("level has no card deck")

// Token is one card on the board. WordID is the match key shared by every token of a word.
type Token struct {
	WordID     int      `json:"wordId"`
	InstanceID string   `json:"instanceId"`
	Modality   Modality `json:"modality"`
	Payload    string   `json:"payload"`
	Word       string   `json:"word"`
}

// Shuffler is satisfied by *rand.Rand.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

var levelModalities = map[int][]Modality{
	1: {ModalityImage, ModalityAudio},
	2: {ModalityImage, ModalityDefinition},
	3: {ModalityImage, ModalityAudio, ModalityDefinition},
}

// ModalitiesForLevel lists the token kinds each word contributes on a level; nil for levels without cards.
func ModalitiesForLevel(level int) []Modality {
	m := levelModalities[level]
	if m == nil {
		return nil
	}
	out := make([]Modality, len(m))
	copy(out, m)
	return out
}

// GroupSize is how many cards must be face up to attempt a match.
func GroupSize(level int) int {
	return len(levelModalities[level])
}

// Build creates the shuffled card deck for a level.
func Build(level int, words []catalog.Word, sh Shuffler) ([]Token, error) {
	mods := levelModalities[level]
	if mods == nil {
		return nil, fmt.Errorf("%w: %d", ErrNoDeck, level)
	}
	tokens := make([]Token, 0, len(words)*len(mods))
	for _, w := range words {
		for _, m := range mods {
			tokens = append(tokens, newToken(w, m))
		}
	}
	// rand.Shuffle is a Fisher-Yates permutation.
	sh.Shuffle(len(tokens), func(i, j int) { tokens[i], tokens[j] = tokens[j], tokens[i] })
	return tokens, nil
}

func newToken(w catalog.Word, m Modality) Token {
	t := Token{WordID: w.ID, InstanceID: uuid.NewString(), Modality: m, Word: w.Spelling}
	switch m {
	case ModalityImage:
		t.Payload = w.Image
	case ModalityAudio:
		t.Payload = w.Audio
	case ModalityDefinition:
		t.Payload = w.Meaning
	case ModalitySpelling:
		t.Payload = w.Spelling
	}
	return t
}
