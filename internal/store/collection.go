package store

import (
	"context"
	"database/sql"

	"github.com/hayashikun/kotoba/internal/domain"
)

// CollectionStore defines the interface for deck persistence.
type CollectionStore interface {
	// Create inserts the collection if no collection with the same name exists.
	// A duplicate name is a silent no-op, not an error: uniqueness is enforced
	// by the storage layer in a single atomic statement, so there is no
	// check-then-insert race. Callers that need the resulting row must re-query
	// (GetByName).
	Create(ctx context.Context, collection *domain.Collection) error

	// GetByName retrieves a collection by its unique name.
	// Returns ErrCollectionNotFound if it does not exist.
	GetByName(ctx context.Context, name string) (*domain.Collection, error)

	// ListAll returns all collections ordered by name.
	ListAll(ctx context.Context) ([]*domain.Collection, error)

	// Delete removes a collection by ID. Membership links are removed by
	// cascade. Returns ErrCollectionNotFound if no such collection exists.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a CollectionStore bound to the provided transaction.
	WithTx(tx *sql.Tx) CollectionStore
}
