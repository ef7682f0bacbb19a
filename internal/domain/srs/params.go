package srs

import "github.com/hayashikun/kotoba/internal/domain"

// Params defines the configurable parameters of the review heuristic.
//
// The adjustment scheme is deliberately simple: a flat bonus on a correct
// answer, a flat penalty on an incorrect one, and a hard floor. It is not
// SM-2: no interval or repetition count is computed.
type Params struct {
	// InitialEaseFactor is assigned when a word's stats are first created.
	InitialEaseFactor float64

	// CorrectAdjustment is added to the ease factor on a correct answer.
	CorrectAdjustment float64

	// IncorrectAdjustment is added to the ease factor on an incorrect answer
	// (negative by convention).
	IncorrectAdjustment float64

	// MinEaseFactor is the floor the ease factor is clamped to. There is no
	// ceiling.
	MinEaseFactor float64
}

// NewDefaultParams creates a Params instance with the standard values.
func NewDefaultParams() *Params {
	return &Params{
		InitialEaseFactor:   domain.DefaultEaseFactor,
		CorrectAdjustment:   0.15,
		IncorrectAdjustment: -0.25,
		MinEaseFactor:       domain.MinEaseFactor,
	}
}
