package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWord(t *testing.T) {
	t.Run("valid word", func(t *testing.T) {
		word, err := NewWord("食べる", "たべる", "to eat", "word")
		require.NoError(t, err)
		assert.Equal(t, "食べる", word.Kanji)
		assert.Equal(t, "たべる", word.Reading)
		assert.Zero(t, word.ID, "ID is assigned by the store, not the constructor")
		assert.Nil(t, word.JLPTLevel)
		assert.Nil(t, word.GradeLevel)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		word, err := NewWord("  水 ", "\tみず\n", " water ", " word ")
		require.NoError(t, err)
		assert.Equal(t, "水", word.Kanji)
		assert.Equal(t, "みず", word.Reading)
		assert.Equal(t, "water", word.Meaning)
		assert.Equal(t, "word", word.Type)
	})

	t.Run("empty meaning and type are allowed", func(t *testing.T) {
		_, err := NewWord("水", "みず", "", "")
		assert.NoError(t, err)
	})

	t.Run("rejects empty kanji", func(t *testing.T) {
		_, err := NewWord("   ", "みず", "water", "word")
		assert.ErrorIs(t, err, ErrWordKanjiEmpty)
	})

	t.Run("rejects empty reading", func(t *testing.T) {
		_, err := NewWord("水", "", "water", "word")
		assert.ErrorIs(t, err, ErrWordReadingEmpty)
	})
}

func TestWordValidate(t *testing.T) {
	t.Run("whitespace-only kanji fails", func(t *testing.T) {
		word := &Word{Kanji: "  ", Reading: "よみ"}
		assert.ErrorIs(t, word.Validate(), ErrWordKanjiEmpty)
	})

	t.Run("whitespace-only reading fails", func(t *testing.T) {
		word := &Word{Kanji: "字", Reading: " \t"}
		assert.ErrorIs(t, word.Validate(), ErrWordReadingEmpty)
	})
}
