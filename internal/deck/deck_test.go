package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiliankoe/wordquest/internal/catalog"
)

func TestBuildComposition(t *testing.T) {
	words := catalog.Default()
	rng := rand.New(rand.NewSource(1))

	for level := 1; level <= MaxLevel; level++ {
		mods := ModalitiesForLevel(level)
		tokens, err := Build(level, words, rng)
		require.NoError(t, err)
		require.Len(t, tokens, len(words)*len(mods), "level %d", level)

		groups := map[int]map[Modality]int{}
		instances := map[string]bool{}
		for _, tk := range tokens {
			if groups[tk.WordID] == nil {
				groups[tk.WordID] = map[Modality]int{}
			}
			groups[tk.WordID][tk.Modality]++
			assert.False(t, instances[tk.InstanceID], "instance ids must be unique")
			instances[tk.InstanceID] = true
		}
		require.Len(t, groups, len(words))
		for id, byMod := range groups {
			for _, m := range mods {
				assert.Equal(t, 1, byMod[m], "word %d modality %s", id, m)
			}
		}
	}
}

func TestBuildPayloads(t *testing.T) {
	words := catalog.Slice(catalog.Default(), 1)
	tokens, err := Build(3, words, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	for _, tk := range tokens {
		switch tk.Modality {
		case ModalityImage:
			assert.Equal(t, words[0].Image, tk.Payload)
		case ModalityAudio:
			assert.Equal(t, words[0].Audio, tk.Payload)
		case ModalityDefinition:
			assert.Equal(t, words[0].Meaning, tk.Payload)
		}
		assert.Equal(t, "Through", tk.Word)
	}
}

func TestBuildRejectsLevelWithoutCards(t *testing.T) {
	_, err := Build(4, catalog.Default(), rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrNoDeck)
	assert.Nil(t, ModalitiesForLevel(4))
	assert.Equal(t, 0, GroupSize(4))
}

func TestGroupSize(t *testing.T) {
	assert.Equal(t, 2, GroupSize(1))
	assert.Equal(t, 2, GroupSize(2))
	assert.Equal(t, 3, GroupSize(3))
}

func TestBuildFreshInstanceIDs(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a, err := Build(1, catalog.Default(), rng)
	require.NoError(t, err)
	b, err := Build(1, catalog.Default(), rng)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, tk := range a {
		seen[tk.InstanceID] = true
	}
	for _, tk := range b {
		assert.False(t, seen[tk.InstanceID])
	}
}

// Every ordering of a three-word, one-card-each deck should show up about equally often.
func TestShuffleIsUniform(t *testing.T) {
	words := []catalog.Word{
		{ID: 1, Spelling: "a"},
		{ID: 2, Spelling: "b"},
		{ID: 3, Spelling: "c"},
	}
	levelModalities[99] = []Modality{ModalitySpelling}
	defer delete(levelModalities, 99)

	rng := rand.New(rand.NewSource(42))
	const trials = 60000
	counts := map[[3]int]int{}
	for i := 0; i < trials; i++ {
		tokens, err := Build(99, words, rng)
		require.NoError(t, err)
		counts[[3]int{tokens[0].WordID, tokens[1].WordID, tokens[2].WordID}]++
	}
	require.Len(t, counts, 6)
	for perm, n := range counts {
		assert.InDelta(t, trials/6, n, 1000, "permutation %v", perm)
	}
}
