package store

import (
	"context"
	"database/sql"

	"github.com/hayashikun/kotoba/internal/domain"
)

// WordStore defines the interface for word catalog persistence.
type WordStore interface {
	// Upsert looks a word up by its (kanji, reading) natural key. If it exists,
	// the meaning, level, and type fields are overwritten on the existing row,
	// leaving the ID and key fields untouched; otherwise a new row is inserted
	// and the word's ID field is populated. The branch taken is logged at Info.
	//
	// Callers batching several upserts atomically should obtain a store bound
	// to a shared transaction via WithTx; otherwise each call commits on its
	// own.
	Upsert(ctx context.Context, word *domain.Word) error

	// GetByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Word, error)

	// FindByKanji returns the word whose kanji matches after both sides are
	// trimmed of surrounding whitespace; the comparison is byte-exact (no case
	// folding, no locale collation).
	// Returns ErrWordNotFound when no row matches.
	FindByKanji(ctx context.Context, kanji string) (*domain.Word, error)

	// Search returns words whose trimmed kanji, reading, or meaning contains
	// the query as a case-sensitive substring, ordered by ascending ID.
	Search(ctx context.Context, query string) ([]*domain.Word, error)

	// RandomSample returns up to count words chosen uniformly at random without
	// replacement. Fewer than count rows means all rows are returned;
	// count <= 0 yields an empty slice.
	RandomSample(ctx context.Context, count int) ([]*domain.Word, error)

	// RandomSampleByLevel is RandomSample restricted to words with the given
	// JLPT level.
	RandomSampleByLevel(ctx context.Context, jlptLevel, count int) ([]*domain.Word, error)

	// RandomSampleByCollection is RandomSample restricted to words linked to
	// the given collection.
	RandomSampleByCollection(ctx context.Context, collectionID int64, count int) ([]*domain.Word, error)

	// GetByCollection returns every word linked to the given collection,
	// ordered by ascending ID.
	GetByCollection(ctx context.Context, collectionID int64) ([]*domain.Word, error)

	// GetAll returns every word in the catalog.
	GetAll(ctx context.Context) ([]*domain.Word, error)

	// BulkInsert inserts each word if its natural key is absent (existing words
	// are silently skipped, not updated) and links every word, newly inserted
	// or pre-existing, into the target collection.
	//
	// This method MUST run within a caller-managed transaction to be atomic:
	//
	//	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
	//	    return wordStore.WithTx(tx).BulkInsert(ctx, words, collectionID)
	//	})
	BulkInsert(ctx context.Context, words []*domain.Word, collectionID int64) error

	// WithTx returns a WordStore bound to the provided transaction so multiple
	// operations can share one unit of work.
	WithTx(tx *sql.Tx) WordStore
}
