package store

import (
	"context"
	"database/sql"

	"github.com/hayashikun/kotoba/internal/domain"
)

// SessionStatStore defines the interface for quiz session summaries.
type SessionStatStore interface {
	// Insert persists an already-complete session record. Session records are
	// write-once; there is no update operation.
	Insert(ctx context.Context, stat *domain.SessionStat) error

	// ListAllWithCollectionName returns all sessions ordered by start time
	// descending, with the optional collection name resolved by a left join.
	// CollectionName is empty when the session had no collection or the linked
	// collection no longer exists.
	ListAllWithCollectionName(ctx context.Context) ([]*domain.SessionStat, error)

	// WithTx returns a SessionStatStore bound to the provided transaction.
	WithTx(tx *sql.Tx) SessionStatStore
}
