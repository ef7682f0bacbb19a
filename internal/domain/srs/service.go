// Package srs implements the review-scheduling heuristic: a per-word ease
// factor nudged up on correct answers and down on incorrect ones, floored at
// a minimum value.
package srs

import (
	"errors"
	"time"

	"github.com/hayashikun/kotoba/internal/domain"
)

// Common errors
var (
	ErrNilStat = errors.New("review stat cannot be nil")
)

// Service defines the interface for review-heuristic operations.
type Service interface {
	// Advance computes the stats resulting from one answer. It returns a new
	// ReviewStat and never mutates the input.
	Advance(stat *domain.ReviewStat, correct bool, now time.Time) (*domain.ReviewStat, error)

	// Params exposes the parameters in effect, primarily so callers can seed
	// fresh stats with the configured initial ease factor.
	Params() *Params
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a review heuristic service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a review heuristic service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// Advance implements the Service interface.
func (s *defaultService) Advance(
	stat *domain.ReviewStat,
	correct bool,
	now time.Time,
) (*domain.ReviewStat, error) {
	if stat == nil {
		return nil, ErrNilStat
	}

	return advance(stat, correct, now, s.params), nil
}

// Params implements the Service interface.
func (s *defaultService) Params() *Params {
	return s.params
}
