package domain

import (
	"errors"
	"strings"
)

// Word-specific validation errors
var (
	// ErrWordKanjiEmpty is returned when a word's written form is empty.
	ErrWordKanjiEmpty = errors.New("word kanji cannot be empty")

	// ErrWordReadingEmpty is returned when a word's reading is empty.
	ErrWordReadingEmpty = errors.New("word reading cannot be empty")
)

// Word represents a single vocabulary entry. The (Kanji, Reading) pair is the
// natural key: two words with the same pair are the same entry, and upserts
// resolve against it. ID is assigned by the store on first insert and never
// changes.
type Word struct {
	ID         int64  `json:"id"`
	Kanji      string `json:"kanji"`
	Reading    string `json:"reading"`
	Meaning    string `json:"meaning"`
	JLPTLevel  *int   `json:"jlpt_level,omitempty"`
	GradeLevel *int   `json:"grade_level,omitempty"`
	Type       string `json:"type"` // free-form category tag, e.g. "word", "kanji"
}

// NewWord creates a Word with the key fields trimmed of surrounding
// whitespace. Returns an error if validation fails.
func NewWord(kanji, reading, meaning, wordType string) (*Word, error) {
	word := &Word{
		Kanji:   strings.TrimSpace(kanji),
		Reading: strings.TrimSpace(reading),
		Meaning: strings.TrimSpace(meaning),
		Type:    strings.TrimSpace(wordType),
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks if the Word has valid data.
// Returns an error if any field fails validation.
func (w *Word) Validate() error {
	if strings.TrimSpace(w.Kanji) == "" {
		return ErrWordKanjiEmpty
	}

	if strings.TrimSpace(w.Reading) == "" {
		return ErrWordReadingEmpty
	}

	return nil
}
