package domain

import (
	"errors"
	"time"
)

// ReviewStat validation errors
var (
	// ErrReviewStatWordIDEmpty is returned when a review stat has no word ID.
	ErrReviewStatWordIDEmpty = errors.New("review stat word ID cannot be empty")

	// ErrNegativeCounter is returned when a correctness counter is negative.
	ErrNegativeCounter = errors.New("review counters must be non-negative")

	// ErrEaseFactorTooLow is returned when the ease factor is below the 1.3 floor.
	ErrEaseFactorTooLow = errors.New("ease factor must be at least 1.3")
)

// Ease factor bounds shared with the srs package.
const (
	// DefaultEaseFactor is the ease factor assigned to a word on its first review.
	DefaultEaseFactor = 2.5

	// MinEaseFactor is the floor below which the ease factor never drops.
	MinEaseFactor = 1.3
)

// ReviewStat tracks per-word review statistics. At most one ReviewStat exists
// per word, and rows are created lazily on the first recorded answer; a word
// that has never been quizzed has no row at all.
type ReviewStat struct {
	ID             int64      `json:"id"`
	WordID         int64      `json:"word_id"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	TimesCorrect   int        `json:"times_correct"`
	TimesIncorrect int        `json:"times_incorrect"`
	EaseFactor     float64    `json:"ease_factor"`
}

// NewReviewStat creates fresh statistics for a word that has never been
// reviewed: zero counters, no review timestamp, default ease factor.
func NewReviewStat(wordID int64) (*ReviewStat, error) {
	stat := &ReviewStat{
		WordID:     wordID,
		EaseFactor: DefaultEaseFactor,
	}

	if err := stat.Validate(); err != nil {
		return nil, err
	}

	return stat, nil
}

// Validate checks if the ReviewStat has valid data.
func (s *ReviewStat) Validate() error {
	if s.WordID <= 0 {
		return ErrReviewStatWordIDEmpty
	}

	if s.TimesCorrect < 0 || s.TimesIncorrect < 0 {
		return ErrNegativeCounter
	}

	if s.EaseFactor < MinEaseFactor {
		return ErrEaseFactorTooLow
	}

	return nil
}

// Differential is the mistake differential used as the primary priority key:
// words with more incorrect than correct answers rank first for review.
func (s *ReviewStat) Differential() int {
	return s.TimesIncorrect - s.TimesCorrect
}
