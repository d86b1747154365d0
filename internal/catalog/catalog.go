// Package catalog holds the read-only list of learnable words a session is built from.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed words.yaml
var embeddedWords []byte

// Word is a single learnable word. Image and Audio are opaque references resolved by the renderer.
type Word struct {
	ID           int    `yaml:"id" json:"id"`
	Spelling     string `yaml:"word" json:"word"`
	PartOfSpeech string `yaml:"type" json:"type"`
	Meaning      string `yaml:"meaning" json:"meaning"`
	Example      string `yaml:"example" json:"example"`
	Image        string `yaml:"image" json:"image"`
	Audio        string `yaml:"audio" json:"audio"`
}

type file struct {
	Words []Word `yaml:"words"`
}

var (
	ErrEmpty         = errors.New("catalog has no words")
	ErrDuplicateID   = errors.New("duplicate word id")
	ErrEmptySpelling = errors.New("word has empty spelling")
	ErrNoExample     = errors.New("example sentence does not contain the word")
)

// Default returns the embedded catalog. It panics if the embedded file is broken.
func Default() []Word {
	words, err := Parse(embeddedWords)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded words.yaml: %v", err))
	}
	return words
}

// Load reads a catalog file from disk. An empty path yields the embedded default.
func Load(path string) ([]Word, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	words, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return words, nil
}

// Parse decodes and validates a YAML catalog document.
func Parse(b []byte) ([]Word, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	if err := Validate(f.Words); err != nil {
		return nil, err
	}
	return f.Words, nil
}

// Validate checks ids are unique and every example sentence contains its word.
func Validate(words []Word) error {
	if len(words) == 0 {
		return ErrEmpty
	}
	seen := make(map[int]bool, len(words))
	for _, w := range words {
		if seen[w.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicateID, w.ID)
		}
		seen[w.ID] = true
		if strings.TrimSpace(w.Spelling) == "" {
			return fmt.Errorf("%w: id %d", ErrEmptySpelling, w.ID)
		}
		if !strings.Contains(strings.ToLower(w.Example), strings.ToLower(w.Spelling)) {
			return fmt.Errorf("%w: %q", ErrNoExample, w.Spelling)
		}
	}
	return nil
}

// Slice returns a copy of the first n words, or all of them if n is out of range.
func Slice(words []Word, n int) []Word {
	if n <= 0 || n > len(words) {
		n = len(words)
	}
	out := make([]Word, n)
	copy(out, words[:n])
	return out
}

// ByID finds a word by id.
func ByID(words []Word, id int) (Word, bool) {
	for _, w := range words {
		if w.ID == id {
			return w, true
		}
	}
	return Word{}, false
}
