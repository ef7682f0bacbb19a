package domain

import (
	"errors"
	"time"
)

// SessionStat validation errors
var (
	// ErrSessionTotalsMismatch is returned when totals do not add up.
	ErrSessionTotalsMismatch = errors.New("total questions must equal correct plus incorrect")

	// ErrSessionNegativeTotals is returned when any counter is negative.
	ErrSessionNegativeTotals = errors.New("session totals must be non-negative")

	// ErrSessionEndsBeforeStart is returned when the end precedes the start.
	ErrSessionEndsBeforeStart = errors.New("session cannot end before it starts")
)

// SessionStat summarizes one completed quiz run. The caller accumulates the
// counts in memory while the quiz runs and persists the record exactly once at
// session end; a persisted SessionStat is never modified.
type SessionStat struct {
	ID             int64     `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
	TotalQuestions int       `json:"total_questions"`
	TotalCorrect   int       `json:"total_correct"`
	TotalIncorrect int       `json:"total_incorrect"`
	// CollectionID is set only when the session targeted a specific collection.
	CollectionID *int64 `json:"collection_id,omitempty"`
	// CollectionName is resolved by query when listing; empty when the session
	// had no collection or the collection has since been deleted.
	CollectionName string `json:"collection_name,omitempty"`
}

// NewSessionStat creates a completed session record ready for persistence.
// Returns an error if validation fails.
func NewSessionStat(
	startedAt, endedAt time.Time,
	totalCorrect, totalIncorrect int,
	collectionID *int64,
) (*SessionStat, error) {
	stat := &SessionStat{
		StartedAt:      startedAt,
		EndedAt:        endedAt,
		TotalQuestions: totalCorrect + totalIncorrect,
		TotalCorrect:   totalCorrect,
		TotalIncorrect: totalIncorrect,
		CollectionID:   collectionID,
	}

	if err := stat.Validate(); err != nil {
		return nil, err
	}

	return stat, nil
}

// Validate checks if the SessionStat has valid data.
func (s *SessionStat) Validate() error {
	if s.TotalQuestions < 0 || s.TotalCorrect < 0 || s.TotalIncorrect < 0 {
		return ErrSessionNegativeTotals
	}

	if s.TotalQuestions != s.TotalCorrect+s.TotalIncorrect {
		return ErrSessionTotalsMismatch
	}

	if s.EndedAt.Before(s.StartedAt) {
		return ErrSessionEndsBeforeStart
	}

	return nil
}

// Accuracy returns the percentage of correct answers, or 0 for an empty session.
func (s *SessionStat) Accuracy() float64 {
	if s.TotalQuestions <= 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalQuestions) * 100
}
