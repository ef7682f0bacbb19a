// Package review implements the review tracker: it records quiz answers
// against per-word statistics and ranks words by how urgently they need
// review.
package review

import (
	"context"

	"github.com/hayashikun/kotoba/internal/domain"
)

// Service coordinates answer recording and priority selection.
type Service interface {
	// RecordResult records one answer for a word. Statistics are created
	// lazily: the first answer for a word creates its ReviewStat row with
	// default values, and every answer, including the first, updates the
	// review timestamp, the correctness counters, and the ease factor.
	// Returns the statistics as persisted.
	RecordResult(ctx context.Context, wordID int64, correct bool) (*domain.ReviewStat, error)

	// PriorityWordIDs returns up to count word IDs most due for review, worst
	// mistake differential first. Words never quizzed have no statistics row
	// and are not eligible. count <= 0 yields an empty slice.
	PriorityWordIDs(ctx context.Context, count int) ([]int64, error)
}
