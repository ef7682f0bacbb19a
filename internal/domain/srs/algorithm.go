package srs

import (
	"time"

	"github.com/hayashikun/kotoba/internal/domain"
)

// nextEaseFactor applies the outcome adjustment to the current ease factor and
// clamps the result to the configured floor.
func nextEaseFactor(currentEF float64, correct bool, params *Params) float64 {
	adjustment := params.IncorrectAdjustment
	if correct {
		adjustment = params.CorrectAdjustment
	}

	newEF := currentEF + adjustment
	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return newEF
}

// advance creates a new ReviewStat reflecting one answer at the given time.
// The input stat is not modified; callers persist the returned copy. Every
// answer, including the very first one for a word, applies the ease-factor
// adjustment.
func advance(stat *domain.ReviewStat, correct bool, now time.Time, params *Params) *domain.ReviewStat {
	next := &domain.ReviewStat{
		ID:             stat.ID,
		WordID:         stat.WordID,
		TimesCorrect:   stat.TimesCorrect,
		TimesIncorrect: stat.TimesIncorrect,
		EaseFactor:     stat.EaseFactor,
	}

	reviewedAt := now.UTC()
	next.LastReviewedAt = &reviewedAt

	if correct {
		next.TimesCorrect++
	} else {
		next.TimesIncorrect++
	}

	next.EaseFactor = nextEaseFactor(stat.EaseFactor, correct, params)

	return next
}
