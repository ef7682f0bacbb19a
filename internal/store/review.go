package store

import (
	"context"
	"database/sql"

	"github.com/hayashikun/kotoba/internal/domain"
)

// ReviewStatStore defines the interface for per-word review statistics.
type ReviewStatStore interface {
	// Create saves a new review stat row for a word. At most one row may exist
	// per word; a second Create for the same word returns ErrDuplicate.
	Create(ctx context.Context, stat *domain.ReviewStat) error

	// GetByWordID retrieves the review stats for a word.
	// Returns ErrReviewStatNotFound when the word has never been reviewed:
	// rows are sparse and created lazily on the first recorded answer.
	GetByWordID(ctx context.Context, wordID int64) (*domain.ReviewStat, error)

	// Update overwrites an existing stat row identified by its word ID.
	// Returns ErrReviewStatNotFound if the row does not exist.
	Update(ctx context.Context, stat *domain.ReviewStat) error

	// PriorityWordIDs returns up to count word IDs ranked by review urgency:
	// mistake differential (timesIncorrect - timesCorrect) descending, then
	// lastReviewedAt ascending with never-reviewed (NULL) rows first, then
	// insertion order. Only words that already have a stat row are eligible.
	// count <= 0 yields an empty slice.
	PriorityWordIDs(ctx context.Context, count int) ([]int64, error)

	// WithTx returns a ReviewStatStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ReviewStatStore
}
